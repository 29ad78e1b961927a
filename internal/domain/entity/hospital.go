package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCriticalLevel umbral de stock bajo con el que nace cada BloodUnit.
const DefaultCriticalLevel = 5

// BloodUnit inventario de un grupo sanguíneo dentro de un hospital.
type BloodUnit struct {
	BloodGroup    string
	Units         int
	CriticalLevel int
}

// IsCritical indica si las unidades están en o por debajo del umbral propio de la unidad.
func (u BloodUnit) IsCritical() bool {
	return u.Units <= u.CriticalLevel
}

// Hospital perfil de rol de un hospital.
// AverageRating es derivado: lo recalcula el caso de uso de reseñas, nunca se edita directamente.
type Hospital struct {
	ID                  string
	UserID              string
	UserEmail           string // solo lectura, poblado por JOIN
	Name                string
	Email               string
	Address             string
	City                string
	Area                string
	Country             string
	ContactNumber       string
	AvailableBloodUnits []BloodUnit
	EmergencyContact    string
	Website             string
	AverageRating       decimal.NullDecimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultBloodUnits devuelve las 8 unidades iniciales (una por grupo, en 0).
func DefaultBloodUnits() []BloodUnit {
	units := make([]BloodUnit, 0, len(BloodGroups))
	for _, g := range BloodGroups {
		units = append(units, BloodUnit{BloodGroup: g, Units: 0, CriticalLevel: DefaultCriticalLevel})
	}
	return units
}

// Unit devuelve la unidad del grupo indicado, o nil si el hospital no la tiene.
func (h *Hospital) Unit(bloodGroup string) *BloodUnit {
	for i := range h.AvailableBloodUnits {
		if h.AvailableBloodUnits[i].BloodGroup == bloodGroup {
			return &h.AvailableBloodUnits[i]
		}
	}
	return nil
}

// HasStock indica si el hospital tiene al menos una unidad disponible del grupo.
func (h *Hospital) HasStock(bloodGroup string) bool {
	u := h.Unit(bloodGroup)
	return u != nil && u.Units > 0
}

// CriticalUnits devuelve las unidades con units <= criticalLevel.
func (h *Hospital) CriticalUnits() []BloodUnit {
	out := make([]BloodUnit, 0)
	for _, u := range h.AvailableBloodUnits {
		if u.IsCritical() {
			out = append(out, u)
		}
	}
	return out
}
