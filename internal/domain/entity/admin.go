package entity

import "time"

// Valores por defecto del perfil de administrador.
const DefaultAdminName = "System Administrator"

// DefaultAdminPermissions permisos con los que se crea un administrador.
var DefaultAdminPermissions = []string{"manage_users", "manage_reviews", "view_analytics"}

// Admin perfil de rol de un administrador.
type Admin struct {
	ID          string
	UserID      string
	UserEmail   string
	Name        string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
