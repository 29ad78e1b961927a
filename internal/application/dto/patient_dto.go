package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// PatientRequest perfil completo de paciente (registro, y resultado de aplicar un parche).
type PatientRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Age              *int   `json:"age" validate:"omitempty,min=1,max=120"`
	BloodGroup       string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	City             string `json:"city" validate:"max=100"`
	Area             string `json:"area" validate:"max=100"`
	Phone            string `json:"phone" validate:"max=30"`
	EmergencyContact string `json:"emergencyContact" validate:"max=100"`
}

// Normalize recorta espacios de los campos de texto.
func (r *PatientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.BloodGroup = strings.TrimSpace(r.BloodGroup)
	r.City = strings.TrimSpace(r.City)
	r.Area = strings.TrimSpace(r.Area)
	r.Phone = strings.TrimSpace(r.Phone)
	r.EmergencyContact = strings.TrimSpace(r.EmergencyContact)
}

// Apply copia los campos sobre la entidad.
func (r PatientRequest) Apply(p *entity.Patient) {
	p.Name = r.Name
	p.Age = r.Age
	p.BloodGroup = r.BloodGroup
	p.City = r.City
	p.Area = r.Area
	p.Phone = r.Phone
	p.EmergencyContact = r.EmergencyContact
}

// PatientRequestFrom construye el request a partir del perfil persistido.
func PatientRequestFrom(p *entity.Patient) PatientRequest {
	return PatientRequest{
		Name:             p.Name,
		Age:              p.Age,
		BloodGroup:       p.BloodGroup,
		City:             p.City,
		Area:             p.Area,
		Phone:            p.Phone,
		EmergencyContact: p.EmergencyContact,
	}
}

// UpdatePatientRequest parche de perfil: solo se aplican los campos presentes.
type UpdatePatientRequest struct {
	Name             *string `json:"name"`
	Age              *int    `json:"age"`
	BloodGroup       *string `json:"bloodGroup"`
	City             *string `json:"city"`
	Area             *string `json:"area"`
	Phone            *string `json:"phone"`
	EmergencyContact *string `json:"emergencyContact"`
}

// MergeInto aplica el parche sobre r.
func (u UpdatePatientRequest) MergeInto(r *PatientRequest) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Age != nil {
		r.Age = u.Age
	}
	if u.BloodGroup != nil {
		r.BloodGroup = *u.BloodGroup
	}
	if u.City != nil {
		r.City = *u.City
	}
	if u.Area != nil {
		r.Area = *u.Area
	}
	if u.Phone != nil {
		r.Phone = *u.Phone
	}
	if u.EmergencyContact != nil {
		r.EmergencyContact = *u.EmergencyContact
	}
}

// PatientResponse salida de un perfil de paciente.
type PatientResponse struct {
	ID               string    `json:"id"`
	User             UserRef   `json:"user"`
	Name             string    `json:"name"`
	Age              *int      `json:"age,omitempty"`
	BloodGroup       string    `json:"bloodGroup,omitempty"`
	City             string    `json:"city,omitempty"`
	Area             string    `json:"area,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	EmergencyContact string    `json:"emergencyContact,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewPatientResponse mapea la entidad a su salida.
func NewPatientResponse(p *entity.Patient) *PatientResponse {
	return &PatientResponse{
		ID:               p.ID,
		User:             UserRef{ID: p.UserID, Email: p.UserEmail},
		Name:             p.Name,
		Age:              p.Age,
		BloodGroup:       p.BloodGroup,
		City:             p.City,
		Area:             p.Area,
		Phone:            p.Phone,
		EmergencyContact: p.EmergencyContact,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// NewPatientList mapea una lista (nunca nil).
func NewPatientList(ps []*entity.Patient) []*PatientResponse {
	out := make([]*PatientResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPatientResponse(p))
	}
	return out
}
