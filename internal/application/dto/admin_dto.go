package dto

import (
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// UpdateAdminRequest parche del perfil de administrador (solo el nombre).
type UpdateAdminRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

// Normalize recorta espacios.
func (r *UpdateAdminRequest) Normalize() {
	trimPtr(r.Name)
}

// AdminResponse salida del perfil de administrador.
type AdminResponse struct {
	ID          string    `json:"id"`
	User        UserRef   `json:"user"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewAdminResponse mapea la entidad a su salida.
func NewAdminResponse(a *entity.Admin) *AdminResponse {
	perms := a.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &AdminResponse{
		ID:          a.ID,
		User:        UserRef{ID: a.UserID, Email: a.UserEmail},
		Name:        a.Name,
		Permissions: perms,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// NewUserList mapea usuarios (nunca nil).
func NewUserList(us []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, NewUserResponse(u))
	}
	return out
}
