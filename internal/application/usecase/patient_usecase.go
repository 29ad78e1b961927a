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

const msgPatientNotFound = "Patient profile not found"

// PatientUseCase casos de uso del perfil de paciente.
type PatientUseCase struct {
	repo repository.PatientRepository
}

// NewPatientUseCase construye el caso de uso con el puerto de persistencia.
func NewPatientUseCase(repo repository.PatientRepository) *PatientUseCase {
	return &PatientUseCase{repo: repo}
}

// List devuelve todos los pacientes, más recientes primero.
func (uc *PatientUseCase) List(ctx context.Context) ([]*dto.PatientResponse, error) {
	ps, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPatientList(ps), nil
}

// GetProfile devuelve el perfil del usuario autenticado.
func (uc *PatientUseCase) GetProfile(ctx context.Context, userID string) (*dto.PatientResponse, error) {
	p, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(msgPatientNotFound)
	}
	return dto.NewPatientResponse(p), nil
}

// UpdateProfile aplica el parche, valida el perfil resultante completo y persiste.
func (uc *PatientUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	p, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(msgPatientNotFound)
	}
	req := dto.PatientRequestFrom(p)
	in.MergeInto(&req)
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	req.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewPatientResponse(p), nil
}

// CreateProfile implementa auth.ProfileHandler.
func (uc *PatientUseCase) CreateProfile(ctx context.Context, s ports.Stores, user *entity.User, body []byte) error {
	var req dto.PatientRequest
	if err := dto.Decode(body, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}
	p := &entity.Patient{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		UserEmail: user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.CreatedAt,
	}
	req.Apply(p)
	return s.Patients.Create(ctx, p)
}

// ProfileOf implementa auth.ProfileHandler.
func (uc *PatientUseCase) ProfileOf(ctx context.Context, userID string) (any, error) {
	p, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return nil, err
	}
	return dto.NewPatientResponse(p), nil
}

// UpdateProfileJSON implementa auth.ProfileHandler.
func (uc *PatientUseCase) UpdateProfileJSON(ctx context.Context, userID string, body []byte) (any, error) {
	var in dto.UpdatePatientRequest
	if err := dto.Decode(body, &in); err != nil {
		return nil, err
	}
	return uc.UpdateProfile(ctx, userID, in)
}
