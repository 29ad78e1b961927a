package repository

import (
	"context"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// DonorRepository define el puerto de persistencia para perfiles de donante.
type DonorRepository interface {
	Create(ctx context.Context, d *entity.Donor) error
	GetByUserID(ctx context.Context, userID string) (*entity.Donor, error)
	Update(ctx context.Context, d *entity.Donor) error
	DeleteByUserID(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*entity.Donor, error)
	// Search aplica DonorFilter (incluye isAvailable = true) y ordena por más reciente.
	Search(ctx context.Context, f DonorFilter) ([]*entity.Donor, error)
	Recent(ctx context.Context, limit int) ([]*entity.Donor, error)
	Count(ctx context.Context) (int, error)
	CountAvailable(ctx context.Context) (int, error)
}
