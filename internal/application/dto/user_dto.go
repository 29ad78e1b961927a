package dto

import (
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// RegisterRequest campos comunes del registro. Los campos del perfil se decodifican
// aparte desde Body según el rol.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Body     []byte `json:"-"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser usuario devuelto junto con el token.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse salida de register y login.
type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MeResponse salida de GET /api/auth/me. Profile es nil si el usuario no tiene perfil.
type MeResponse struct {
	User    UserResponse `json:"user"`
	Profile any          `json:"profile"`
}

// NewUserResponse mapea la entidad a su salida pública.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewAuthResponse construye la respuesta con token.
func NewAuthResponse(token string, u *entity.User) *AuthResponse {
	return &AuthResponse{
		Success: true,
		Token:   token,
		User:    AuthUser{ID: u.ID, Email: u.Email, Role: u.Role},
	}
}
