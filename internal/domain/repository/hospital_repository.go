package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// HospitalRepository define el puerto de persistencia para hospitales y sus unidades de sangre.
type HospitalRepository interface {
	// Create persiste el hospital junto con AvailableBloodUnits.
	Create(ctx context.Context, h *entity.Hospital) error
	GetByID(ctx context.Context, id string) (*entity.Hospital, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Hospital, error)
	// Update persiste solo los campos de perfil (no unidades ni rating).
	Update(ctx context.Context, h *entity.Hospital) error
	UpdateBloodUnit(ctx context.Context, hospitalID string, unit entity.BloodUnit) error
	UpdateAverageRating(ctx context.Context, hospitalID string, avg decimal.NullDecimal) error
	DeleteByUserID(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*entity.Hospital, error)
	Search(ctx context.Context, f HospitalFilter) ([]*entity.Hospital, error)
	Recent(ctx context.Context, limit int) ([]*entity.Hospital, error)
	Count(ctx context.Context) (int, error)
	// CountUnitsAtOrBelow cuenta pares (hospital, grupo) con units <= threshold.
	CountUnitsAtOrBelow(ctx context.Context, threshold int) (int, error)
}
