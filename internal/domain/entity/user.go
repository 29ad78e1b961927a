package entity

import "time"

// Roles válidos para User. El rol es inmutable después del registro.
const (
	RolePatient  = "patient"
	RoleDonor    = "donor"
	RoleHospital = "hospital"
	RoleAdmin    = "admin"
)

// IsValidRole indica si r es uno de los cuatro roles conocidos.
func IsValidRole(r string) bool {
	switch r {
	case RolePatient, RoleDonor, RoleHospital, RoleAdmin:
		return true
	}
	return false
}

// User representa la identidad de una cuenta; el perfil de rol vive en su propia tabla.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca se serializa
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
