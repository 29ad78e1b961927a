package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

const msgUserNotFound = "User not found"

// RatingRecomputer recalcula el averageRating de hospitales.
type RatingRecomputer interface {
	RecomputeHospitalRatings(ctx context.Context, hospitalIDs []string) error
}

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	repo    repository.UserRepository
	tx      ports.TxRunner
	ratings RatingRecomputer
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, tx ports.TxRunner, ratings RatingRecomputer) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx, ratings: ratings}
}

// List devuelve todos los usuarios sin password, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	us, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserList(us), nil
}

// ToggleStatus invierte isActive. Un usuario inactivo no puede loguearse y sus tokens dejan de valer.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound(msgUserNotFound)
	}
	u.IsActive = !u.IsActive
	u.UpdatedAt = time.Now().UTC()
	if err := uc.repo.SetActive(ctx, u.ID, u.IsActive, u.UpdatedAt); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// Delete elimina el perfil del rol y luego el usuario, en una transacción.
// Si era paciente, recalcula el rating de los hospitales que pierden sus reseñas.
func (uc *UserUseCase) Delete(ctx context.Context, userID string) error {
	var affected []string
	err := uc.tx.Run(ctx, func(s ports.Stores) error {
		u, err := s.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NotFound(msgUserNotFound)
		}
		switch u.Role {
		case entity.RolePatient:
			p, err := s.Patients.GetByUserID(ctx, u.ID)
			if err != nil {
				return err
			}
			if p != nil {
				if affected, err = s.Reviews.HospitalIDsByPatient(ctx, p.ID); err != nil {
					return err
				}
			}
			err = s.Patients.DeleteByUserID(ctx, u.ID)
			if err != nil {
				return err
			}
		case entity.RoleDonor:
			if err := s.Donors.DeleteByUserID(ctx, u.ID); err != nil {
				return err
			}
		case entity.RoleHospital:
			if err := s.Hospitals.DeleteByUserID(ctx, u.ID); err != nil {
				return err
			}
		case entity.RoleAdmin:
			if err := s.Admins.DeleteByUserID(ctx, u.ID); err != nil {
				return err
			}
		}
		return s.Users.Delete(ctx, u.ID)
	})
	if err != nil {
		return err
	}
	if len(affected) == 0 || uc.ratings == nil {
		return nil
	}
	// El usuario ya fue borrado: un fallo aquí no revierte la operación.
	if err := uc.ratings.RecomputeHospitalRatings(ctx, affected); err != nil {
		log.Error().Err(err).Strs("hospitals", affected).Str("user_id", userID).
			Msg("recalcular rating tras borrar paciente")
	}
	return nil
}
