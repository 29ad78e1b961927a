package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Límites de una reseña.
const (
	ReviewMinRating     = 1
	ReviewMaxRating     = 5
	ReviewMaxCommentLen = 500
)

// Review calificación de un paciente a un hospital. Única por (PatientID, HospitalID).
// Rating y Comment no cambian después de creada.
type Review struct {
	ID              string
	PatientID       string
	HospitalID      string
	Rating          int
	Comment         string
	IsApproved      bool
	PatientName     string // solo lectura, JOIN
	HospitalName    string // solo lectura, JOIN
	HospitalAddress string // solo lectura, JOIN
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AverageRating media aritmética de las calificaciones; inválido (NULL) si no hay ninguna.
func AverageRating(ratings []int) decimal.NullDecimal {
	if len(ratings) == 0 {
		return decimal.NullDecimal{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(ratings))))
	return decimal.NewNullDecimal(avg)
}
