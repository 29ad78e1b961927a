package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// HospitalRequest perfil editable de hospital. No incluye availableBloodUnits ni averageRating:
// las unidades se crean por defecto y el rating es derivado.
type HospitalRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	Email            string `json:"email" validate:"required,email"`
	Address          string `json:"address" validate:"required,max=300"`
	City             string `json:"city" validate:"required,max=100"`
	Area             string `json:"area" validate:"required,max=100"`
	Country          string `json:"country" validate:"required,max=100"`
	ContactNumber    string `json:"contactNumber" validate:"required,max=30"`
	EmergencyContact string `json:"emergencyContact" validate:"max=100"`
	Website          string `json:"website" validate:"max=300"`
}

// Normalize recorta espacios y pasa el email a minúsculas.
func (r *HospitalRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = entity.NormalizeEmail(r.Email)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.Area = strings.TrimSpace(r.Area)
	r.Country = strings.TrimSpace(r.Country)
	r.ContactNumber = strings.TrimSpace(r.ContactNumber)
	r.EmergencyContact = strings.TrimSpace(r.EmergencyContact)
	r.Website = strings.TrimSpace(r.Website)
}

// Apply copia los campos de perfil sobre la entidad.
func (r HospitalRequest) Apply(h *entity.Hospital) {
	h.Name = r.Name
	h.Email = r.Email
	h.Address = r.Address
	h.City = r.City
	h.Area = r.Area
	h.Country = r.Country
	h.ContactNumber = r.ContactNumber
	h.EmergencyContact = r.EmergencyContact
	h.Website = r.Website
}

// HospitalRequestFrom construye el request a partir del perfil persistido.
func HospitalRequestFrom(h *entity.Hospital) HospitalRequest {
	return HospitalRequest{
		Name:             h.Name,
		Email:            h.Email,
		Address:          h.Address,
		City:             h.City,
		Area:             h.Area,
		Country:          h.Country,
		ContactNumber:    h.ContactNumber,
		EmergencyContact: h.EmergencyContact,
		Website:          h.Website,
	}
}

// UpdateHospitalRequest parche de perfil de hospital. Campos desconocidos
// (availableBloodUnits, averageRating) se ignoran al decodificar.
type UpdateHospitalRequest struct {
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Address          *string `json:"address"`
	City             *string `json:"city"`
	Area             *string `json:"area"`
	Country          *string `json:"country"`
	ContactNumber    *string `json:"contactNumber"`
	EmergencyContact *string `json:"emergencyContact"`
	Website          *string `json:"website"`
}

// MergeInto aplica el parche sobre r.
func (u UpdateHospitalRequest) MergeInto(r *HospitalRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.Name, u.Name)
	set(&r.Email, u.Email)
	set(&r.Address, u.Address)
	set(&r.City, u.City)
	set(&r.Area, u.Area)
	set(&r.Country, u.Country)
	set(&r.ContactNumber, u.ContactNumber)
	set(&r.EmergencyContact, u.EmergencyContact)
	set(&r.Website, u.Website)
}

// UpdateBloodUnitsRequest entrada de PATCH /api/hospitals/blood-units.
type UpdateBloodUnitsRequest struct {
	BloodGroup    string `json:"bloodGroup"`
	Units         *int   `json:"units"`
	CriticalLevel *int   `json:"criticalLevel" validate:"omitempty,min=0"`
}

// BloodUnitDTO unidad de sangre de un hospital.
type BloodUnitDTO struct {
	BloodGroup    string `json:"bloodGroup"`
	Units         int    `json:"units"`
	CriticalLevel int    `json:"criticalLevel"`
}

// HospitalResponse salida de un hospital. AverageRating es null si no hay reseñas aprobadas.
type HospitalResponse struct {
	ID                  string              `json:"id"`
	User                UserRef             `json:"user"`
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	Address             string              `json:"address"`
	City                string              `json:"city"`
	Area                string              `json:"area"`
	Country             string              `json:"country"`
	ContactNumber       string              `json:"contactNumber"`
	AvailableBloodUnits []BloodUnitDTO      `json:"availableBloodUnits"`
	EmergencyContact    string              `json:"emergencyContact,omitempty"`
	Website             string              `json:"website,omitempty"`
	AverageRating       decimal.NullDecimal `json:"averageRating"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// NewBloodUnitList mapea unidades (nunca nil).
func NewBloodUnitList(units []entity.BloodUnit) []BloodUnitDTO {
	out := make([]BloodUnitDTO, 0, len(units))
	for _, u := range units {
		out = append(out, BloodUnitDTO{BloodGroup: u.BloodGroup, Units: u.Units, CriticalLevel: u.CriticalLevel})
	}
	return out
}

// NewHospitalResponse mapea la entidad a su salida.
func NewHospitalResponse(h *entity.Hospital) *HospitalResponse {
	return &HospitalResponse{
		ID:                  h.ID,
		User:                UserRef{ID: h.UserID, Email: h.UserEmail},
		Name:                h.Name,
		Email:               h.Email,
		Address:             h.Address,
		City:                h.City,
		Area:                h.Area,
		Country:             h.Country,
		ContactNumber:       h.ContactNumber,
		AvailableBloodUnits: NewBloodUnitList(h.AvailableBloodUnits),
		EmergencyContact:    h.EmergencyContact,
		Website:             h.Website,
		AverageRating:       h.AverageRating,
		CreatedAt:           h.CreatedAt,
		UpdatedAt:           h.UpdatedAt,
	}
}

// NewHospitalList mapea una lista (nunca nil).
func NewHospitalList(hs []*entity.Hospital) []*HospitalResponse {
	out := make([]*HospitalResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, NewHospitalResponse(h))
	}
	return out
}

// HospitalSearchQuery parámetros de GET /api/hospitals/search.
type HospitalSearchQuery struct {
	City       string `query:"city"`
	Area       string `query:"area"`
	Country    string `query:"country"`
	BloodGroup string `query:"bloodGroup"`
}
