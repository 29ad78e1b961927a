package repository

import (
	"context"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// PatientRepository define el puerto de persistencia para perfiles de paciente.
type PatientRepository interface {
	Create(ctx context.Context, p *entity.Patient) error
	GetByUserID(ctx context.Context, userID string) (*entity.Patient, error)
	Update(ctx context.Context, p *entity.Patient) error
	DeleteByUserID(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*entity.Patient, error)
	Recent(ctx context.Context, limit int) ([]*entity.Patient, error)
	Count(ctx context.Context) (int, error)
}
