package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// DonorRequest perfil completo de donante.
type DonorRequest struct {
	Name             string   `json:"name" validate:"required,max=100"`
	Age              int      `json:"age" validate:"required,min=18,max=65"`
	BloodGroup       string   `json:"bloodGroup" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	City             string   `json:"city" validate:"required,max=100"`
	Area             string   `json:"area" validate:"required,max=100"`
	Country          string   `json:"country" validate:"required,max=100"`
	Phone            string   `json:"phone" validate:"required,max=30"`
	LastDonationDate *Date    `json:"lastDonationDate"`
	IsAvailable      *bool    `json:"isAvailable"`
	HealthConditions []string `json:"healthConditions" validate:"omitempty,dive,max=200"`
	CanTravel        bool     `json:"canTravel"`
}

// Normalize recorta espacios y aplica los valores por defecto.
func (r *DonorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.BloodGroup = strings.TrimSpace(r.BloodGroup)
	r.City = strings.TrimSpace(r.City)
	r.Area = strings.TrimSpace(r.Area)
	r.Country = strings.TrimSpace(r.Country)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.IsAvailable == nil {
		available := true
		r.IsAvailable = &available
	}
	conds := make([]string, 0, len(r.HealthConditions))
	for _, c := range r.HealthConditions {
		if c = strings.TrimSpace(c); c != "" {
			conds = append(conds, c)
		}
	}
	r.HealthConditions = conds
}

// Apply copia los campos sobre la entidad.
func (r DonorRequest) Apply(d *entity.Donor) {
	d.Name = r.Name
	d.Age = r.Age
	d.BloodGroup = r.BloodGroup
	d.City = r.City
	d.Area = r.Area
	d.Country = r.Country
	d.Phone = r.Phone
	d.LastDonationDate = nil
	if r.LastDonationDate != nil && !r.LastDonationDate.IsZero() {
		t := r.LastDonationDate.Time
		d.LastDonationDate = &t
	}
	d.IsAvailable = r.IsAvailable == nil || *r.IsAvailable
	d.HealthConditions = r.HealthConditions
	d.CanTravel = r.CanTravel
}

// DonorRequestFrom construye el request a partir del perfil persistido.
func DonorRequestFrom(d *entity.Donor) DonorRequest {
	available := d.IsAvailable
	r := DonorRequest{
		Name:             d.Name,
		Age:              d.Age,
		BloodGroup:       d.BloodGroup,
		City:             d.City,
		Area:             d.Area,
		Country:          d.Country,
		Phone:            d.Phone,
		IsAvailable:      &available,
		HealthConditions: append([]string(nil), d.HealthConditions...),
		CanTravel:        d.CanTravel,
	}
	if d.LastDonationDate != nil {
		r.LastDonationDate = &Date{Time: *d.LastDonationDate}
	}
	return r
}

// UpdateDonorRequest parche de perfil de donante.
type UpdateDonorRequest struct {
	Name             *string   `json:"name"`
	Age              *int      `json:"age"`
	BloodGroup       *string   `json:"bloodGroup"`
	City             *string   `json:"city"`
	Area             *string   `json:"area"`
	Country          *string   `json:"country"`
	Phone            *string   `json:"phone"`
	LastDonationDate *Date     `json:"lastDonationDate"`
	IsAvailable      *bool     `json:"isAvailable"`
	HealthConditions *[]string `json:"healthConditions"`
	CanTravel        *bool     `json:"canTravel"`
}

// MergeInto aplica el parche sobre r.
func (u UpdateDonorRequest) MergeInto(r *DonorRequest) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Age != nil {
		r.Age = *u.Age
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
	if u.Country != nil {
		r.Country = *u.Country
	}
	if u.Phone != nil {
		r.Phone = *u.Phone
	}
	if u.LastDonationDate != nil {
		r.LastDonationDate = u.LastDonationDate
	}
	if u.IsAvailable != nil {
		r.IsAvailable = u.IsAvailable
	}
	if u.HealthConditions != nil {
		r.HealthConditions = *u.HealthConditions
	}
	if u.CanTravel != nil {
		r.CanTravel = *u.CanTravel
	}
}

// DonorResponse salida de un perfil de donante.
type DonorResponse struct {
	ID               string     `json:"id"`
	User             UserRef    `json:"user"`
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	BloodGroup       string     `json:"bloodGroup"`
	City             string     `json:"city"`
	Area             string     `json:"area"`
	Country          string     `json:"country"`
	Phone            string     `json:"phone"`
	LastDonationDate *time.Time `json:"lastDonationDate,omitempty"`
	IsAvailable      bool       `json:"isAvailable"`
	HealthConditions []string   `json:"healthConditions"`
	CanTravel        bool       `json:"canTravel"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewDonorResponse mapea la entidad a su salida.
func NewDonorResponse(d *entity.Donor) *DonorResponse {
	conds := d.HealthConditions
	if conds == nil {
		conds = []string{}
	}
	return &DonorResponse{
		ID:               d.ID,
		User:             UserRef{ID: d.UserID, Email: d.UserEmail},
		Name:             d.Name,
		Age:              d.Age,
		BloodGroup:       d.BloodGroup,
		City:             d.City,
		Area:             d.Area,
		Country:          d.Country,
		Phone:            d.Phone,
		LastDonationDate: d.LastDonationDate,
		IsAvailable:      d.IsAvailable,
		HealthConditions: conds,
		CanTravel:        d.CanTravel,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// NewDonorList mapea una lista (nunca nil).
func NewDonorList(ds []*entity.Donor) []*DonorResponse {
	out := make([]*DonorResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, NewDonorResponse(d))
	}
	return out
}

// DonorSearchQuery parámetros de GET /api/donors/search. Las edades llegan como texto
// para poder rechazar valores no numéricos con un error de validación.
type DonorSearchQuery struct {
	City       string `query:"city"`
	Area       string `query:"area"`
	Country    string `query:"country"`
	BloodGroup string `query:"bloodGroup"`
	MinAge     string `query:"minAge"`
	MaxAge     string `query:"maxAge"`
}

