package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// CreateReviewRequest entrada de POST /api/reviews.
type CreateReviewRequest struct {
	HospitalID string `json:"hospitalId" validate:"required"`
	Rating     *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required,max=500"`
}

// Normalize recorta espacios.
func (r *CreateReviewRequest) Normalize() {
	r.HospitalID = strings.TrimSpace(r.HospitalID)
	r.Comment = strings.TrimSpace(r.Comment)
}

// ReviewParty nombre (y dirección, para hospitales) de una parte de la reseña.
type ReviewParty struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// ReviewResponse salida de una reseña.
type ReviewResponse struct {
	ID         string      `json:"id"`
	Patient    ReviewParty `json:"patient"`
	Hospital   ReviewParty `json:"hospital"`
	Rating     int         `json:"rating"`
	Comment    string      `json:"comment"`
	IsApproved bool        `json:"isApproved"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewReviewResponse mapea la entidad a su salida.
func NewReviewResponse(r *entity.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		Patient:    ReviewParty{ID: r.PatientID, Name: r.PatientName},
		Hospital:   ReviewParty{ID: r.HospitalID, Name: r.HospitalName, Address: r.HospitalAddress},
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// NewReviewList mapea una lista (nunca nil).
func NewReviewList(rs []*entity.Review) []*ReviewResponse {
	out := make([]*ReviewResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewReviewResponse(r))
	}
	return out
}
