package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

const (
	msgHospitalProfileNotFound = "Hospital profile not found"
	msgHospitalNotFound        = "Hospital not found"
	msgMissingBloodUnitFields  = "Please provide blood group and units"
	msgBloodGroupNotFound      = "Blood group not found"
)

// HospitalUseCase casos de uso de hospitales: búsqueda pública, perfil propio e inventario de sangre.
type HospitalUseCase struct {
	repo   repository.HospitalRepository
	report ports.BloodUnitReportGenerator
}

// NewHospitalUseCase construye el caso de uso.
func NewHospitalUseCase(repo repository.HospitalRepository, report ports.BloodUnitReportGenerator) *HospitalUseCase {
	return &HospitalUseCase{repo: repo, report: report}
}

// List devuelve todos los hospitales, más recientes primero.
func (uc *HospitalUseCase) List(ctx context.Context) ([]*dto.HospitalResponse, error) {
	hs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewHospitalList(hs), nil
}

// Search filtra por ubicación en el repositorio y luego, si se indica bloodGroup,
// conserva solo los hospitales con stock (> 0) de ese grupo.
func (uc *HospitalUseCase) Search(ctx context.Context, q dto.HospitalSearchQuery) ([]*dto.HospitalResponse, error) {
	hs, err := uc.repo.Search(ctx, repository.HospitalFilter{
		City:    strings.TrimSpace(q.City),
		Area:    strings.TrimSpace(q.Area),
		Country: strings.TrimSpace(q.Country),
	})
	if err != nil {
		return nil, err
	}
	if g := bloodGroupParam(q.BloodGroup); g != "" {
		filtered := hs[:0]
		for _, h := range hs {
			if h.HasStock(g) {
				filtered = append(filtered, h)
			}
		}
		hs = filtered
	}
	return dto.NewHospitalList(hs), nil
}

// GetProfile devuelve el perfil del hospital autenticado.
func (uc *HospitalUseCase) GetProfile(ctx context.Context, userID string) (*dto.HospitalResponse, error) {
	h, err := uc.load(ctx, userID, msgHospitalProfileNotFound)
	if err != nil {
		return nil, err
	}
	return dto.NewHospitalResponse(h), nil
}

// UpdateProfile aplica el parche sobre los campos de perfil. availableBloodUnits y
// averageRating no son editables por esta vía.
func (uc *HospitalUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateHospitalRequest) (*dto.HospitalResponse, error) {
	h, err := uc.load(ctx, userID, msgHospitalProfileNotFound)
	if err != nil {
		return nil, err
	}
	req := dto.HospitalRequestFrom(h)
	in.MergeInto(&req)
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	req.Apply(h)
	h.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return dto.NewHospitalResponse(h), nil
}

// UpdateBloodUnits fija las unidades de un grupo (negativos se guardan como 0) y,
// opcionalmente, su criticalLevel. Devuelve también el mensaje para el cliente.
func (uc *HospitalUseCase) UpdateBloodUnits(ctx context.Context, userID string, in dto.UpdateBloodUnitsRequest) (*dto.HospitalResponse, string, error) {
	group := strings.TrimSpace(in.BloodGroup)
	if group == "" || in.Units == nil {
		return nil, "", domain.Validation(msgMissingBloodUnitFields)
	}
	if err := dto.Validate(in); err != nil {
		return nil, "", err
	}
	h, err := uc.load(ctx, userID, msgHospitalNotFound)
	if err != nil {
		return nil, "", err
	}
	unit := h.Unit(group)
	if unit == nil {
		return nil, "", domain.NotFound(msgBloodGroupNotFound)
	}
	unit.Units = max(0, *in.Units)
	if in.CriticalLevel != nil {
		unit.CriticalLevel = *in.CriticalLevel
	}
	if err := uc.repo.UpdateBloodUnit(ctx, h.ID, *unit); err != nil {
		return nil, "", err
	}
	h.UpdatedAt = time.Now().UTC()
	msg := fmt.Sprintf("Blood units for %s updated to %d", group, unit.Units)
	return dto.NewHospitalResponse(h), msg, nil
}

// CriticalUnits devuelve las unidades del hospital autenticado con units <= criticalLevel.
func (uc *HospitalUseCase) CriticalUnits(ctx context.Context, userID string) ([]dto.BloodUnitDTO, error) {
	h, err := uc.load(ctx, userID, msgHospitalProfileNotFound)
	if err != nil {
		return nil, err
	}
	return dto.NewBloodUnitList(h.CriticalUnits()), nil
}

// BloodUnitReport genera el PDF de inventario del hospital autenticado.
func (uc *HospitalUseCase) BloodUnitReport(ctx context.Context, userID string) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("blood unit report: generator not configured")
	}
	h, err := uc.load(ctx, userID, msgHospitalProfileNotFound)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateBloodUnitReport(ctx, h, time.Now().UTC())
}

// CreateProfile implementa auth.ProfileHandler. Las 8 unidades se crean siempre en 0,
// sin importar lo que envíe el cliente.
func (uc *HospitalUseCase) CreateProfile(ctx context.Context, s ports.Stores, user *entity.User, body []byte) error {
	var req dto.HospitalRequest
	if err := dto.Decode(body, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}
	h := &entity.Hospital{
		ID:                  uuid.New().String(),
		UserID:              user.ID,
		UserEmail:           user.Email,
		AvailableBloodUnits: entity.DefaultBloodUnits(),
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.CreatedAt,
	}
	req.Apply(h)
	return s.Hospitals.Create(ctx, h)
}

// ProfileOf implementa auth.ProfileHandler.
func (uc *HospitalUseCase) ProfileOf(ctx context.Context, userID string) (any, error) {
	h, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil || h == nil {
		return nil, err
	}
	return dto.NewHospitalResponse(h), nil
}

// UpdateProfileJSON implementa auth.ProfileHandler.
func (uc *HospitalUseCase) UpdateProfileJSON(ctx context.Context, userID string, body []byte) (any, error) {
	var in dto.UpdateHospitalRequest
	if err := dto.Decode(body, &in); err != nil {
		return nil, err
	}
	return uc.UpdateProfile(ctx, userID, in)
}

func (uc *HospitalUseCase) load(ctx context.Context, userID, notFoundMsg string) (*entity.Hospital, error) {
	h, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.NotFound(notFoundMsg)
	}
	return h, nil
}
