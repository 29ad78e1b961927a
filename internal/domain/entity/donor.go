package entity

import "time"

// Edad permitida para donar.
const (
	DonorMinAge = 18
	DonorMaxAge = 65
)

// Donor perfil de rol de un donante.
type Donor struct {
	ID               string
	UserID           string
	UserEmail        string // solo lectura, poblado por JOIN
	Name             string
	Age              int
	BloodGroup       string
	City             string
	Area             string
	Country          string
	Phone            string
	LastDonationDate *time.Time
	IsAvailable      bool
	HealthConditions []string
	CanTravel        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
