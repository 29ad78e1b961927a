package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

const msgDonorNotFound = "Donor profile not found"

// DonorUseCase casos de uso de donantes: búsqueda pública, perfil propio y exportación.
type DonorUseCase struct {
	repo     repository.DonorRepository
	exporter ports.DonorExporter
}

// NewDonorUseCase construye el caso de uso.
func NewDonorUseCase(repo repository.DonorRepository, exporter ports.DonorExporter) *DonorUseCase {
	return &DonorUseCase{repo: repo, exporter: exporter}
}

// List devuelve todos los donantes, más recientes primero.
func (uc *DonorUseCase) List(ctx context.Context) ([]*dto.DonorResponse, error) {
	ds, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDonorList(ds), nil
}

// Search busca donantes disponibles. minAge/maxAge no numéricos son un error de validación.
func (uc *DonorUseCase) Search(ctx context.Context, q dto.DonorSearchQuery) ([]*dto.DonorResponse, error) {
	f := repository.DonorFilter{
		City:       strings.TrimSpace(q.City),
		Area:       strings.TrimSpace(q.Area),
		Country:    strings.TrimSpace(q.Country),
		BloodGroup: bloodGroupParam(q.BloodGroup),
	}
	var err error
	if f.MinAge, err = ageParam("minAge", q.MinAge); err != nil {
		return nil, err
	}
	if f.MaxAge, err = ageParam("maxAge", q.MaxAge); err != nil {
		return nil, err
	}
	ds, err := uc.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewDonorList(ds), nil
}

// GetProfile devuelve el perfil del donante autenticado.
func (uc *DonorUseCase) GetProfile(ctx context.Context, userID string) (*dto.DonorResponse, error) {
	d, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewDonorResponse(d), nil
}

// UpdateProfile aplica el parche, valida el perfil resultante completo y persiste.
func (uc *DonorUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateDonorRequest) (*dto.DonorResponse, error) {
	d, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	req := dto.DonorRequestFrom(d)
	in.MergeInto(&req)
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	req.Apply(d)
	return uc.save(ctx, d)
}

// ToggleAvailability invierte isAvailable del donante autenticado.
func (uc *DonorUseCase) ToggleAvailability(ctx context.Context, userID string) (*dto.DonorResponse, error) {
	d, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.IsAvailable = !d.IsAvailable
	return uc.save(ctx, d)
}

// ExportRoster genera la planilla .xlsx con todos los donantes.
func (uc *DonorUseCase) ExportRoster(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("export donors: exporter not configured")
	}
	ds, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportDonors(ctx, ds, time.Now().UTC())
}

// CreateProfile implementa auth.ProfileHandler.
func (uc *DonorUseCase) CreateProfile(ctx context.Context, s ports.Stores, user *entity.User, body []byte) error {
	var req dto.DonorRequest
	if err := dto.Decode(body, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}
	d := &entity.Donor{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		UserEmail: user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.CreatedAt,
	}
	req.Apply(d)
	return s.Donors.Create(ctx, d)
}

// ProfileOf implementa auth.ProfileHandler.
func (uc *DonorUseCase) ProfileOf(ctx context.Context, userID string) (any, error) {
	d, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil || d == nil {
		return nil, err
	}
	return dto.NewDonorResponse(d), nil
}

// UpdateProfileJSON implementa auth.ProfileHandler.
func (uc *DonorUseCase) UpdateProfileJSON(ctx context.Context, userID string, body []byte) (any, error) {
	var in dto.UpdateDonorRequest
	if err := dto.Decode(body, &in); err != nil {
		return nil, err
	}
	return uc.UpdateProfile(ctx, userID, in)
}

func (uc *DonorUseCase) load(ctx context.Context, userID string) (*entity.Donor, error) {
	d, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NotFound(msgDonorNotFound)
	}
	return d, nil
}

func (uc *DonorUseCase) save(ctx context.Context, d *entity.Donor) (*dto.DonorResponse, error) {
	d.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return dto.NewDonorResponse(d), nil
}

// ageParam interpreta un límite de edad opcional de la query string.
func ageParam(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.Validation(name + " must be a number")
	}
	return &v, nil
}

// bloodGroupParam recupera el "+" que la query string decodifica como espacio ("A " → "A+").
func bloodGroupParam(raw string) string {
	g := strings.TrimSpace(raw)
	if g != "" && !entity.IsValidBloodGroup(g) && entity.IsValidBloodGroup(g+"+") && strings.HasSuffix(raw, " ") {
		return g + "+"
	}
	return g
}
