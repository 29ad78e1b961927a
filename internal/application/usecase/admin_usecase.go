package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

// AdminProfileUseCase perfil de administrador. Solo se crea por bootstrap; el único campo editable es el nombre.
type AdminProfileUseCase struct {
	repo repository.AdminRepository
}

// NewAdminProfileUseCase construye el caso de uso.
func NewAdminProfileUseCase(repo repository.AdminRepository) *AdminProfileUseCase {
	return &AdminProfileUseCase{repo: repo}
}

// CreateProfile implementa auth.ProfileHandler con nombre y permisos por defecto.
func (uc *AdminProfileUseCase) CreateProfile(ctx context.Context, s ports.Stores, user *entity.User, _ []byte) error {
	return s.Admins.Create(ctx, &entity.Admin{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		UserEmail:   user.Email,
		Name:        entity.DefaultAdminName,
		Permissions: append([]string(nil), entity.DefaultAdminPermissions...),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.CreatedAt,
	})
}

// ProfileOf implementa auth.ProfileHandler.
func (uc *AdminProfileUseCase) ProfileOf(ctx context.Context, userID string) (any, error) {
	a, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil || a == nil {
		return nil, err
	}
	return dto.NewAdminResponse(a), nil
}

// UpdateProfileJSON implementa auth.ProfileHandler.
func (uc *AdminProfileUseCase) UpdateProfileJSON(ctx context.Context, userID string, body []byte) (any, error) {
	var in dto.UpdateAdminRequest
	if err := dto.Decode(body, &in); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("Admin profile not found")
	}
	if in.Name != nil {
		a.Name = *in.Name
		a.UpdatedAt = time.Now().UTC()
		if err := uc.repo.Update(ctx, a); err != nil {
			return nil, err
		}
	}
	return dto.NewAdminResponse(a), nil
}
