package entity

import "time"

// Patient perfil de rol de un paciente. Solo Name es obligatorio.
type Patient struct {
	ID               string
	UserID           string
	UserEmail        string // solo lectura, poblado por JOIN
	Name             string
	Age              *int
	BloodGroup       string
	City             string
	Area             string
	Phone            string
	EmergencyContact string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
