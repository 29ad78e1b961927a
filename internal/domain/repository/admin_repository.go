package repository

import (
	"context"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// AdminRepository define el puerto de persistencia para perfiles de administrador.
type AdminRepository interface {
	Create(ctx context.Context, a *entity.Admin) error
	GetByUserID(ctx context.Context, userID string) (*entity.Admin, error)
	Update(ctx context.Context, a *entity.Admin) error
	DeleteByUserID(ctx context.Context, userID string) error
}
