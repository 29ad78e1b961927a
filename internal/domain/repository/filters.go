package repository

import "github.com/jhoicas/bloodconnect-api/internal/domain/entity"

// DonorFilter criterios de búsqueda de donantes (AND). Campos vacíos/nil no filtran.
// City, Area y Country son substrings sin distinguir mayúsculas; BloodGroup es exacto;
// la edad es inclusiva en ambos extremos.
type DonorFilter struct {
	City       string
	Area       string
	Country    string
	BloodGroup string
	MinAge     *int
	MaxAge     *int
}

// Matches evalúa el filtro en memoria, incluyendo el filtro fijo isAvailable = true.
func (f DonorFilter) Matches(d *entity.Donor) bool {
	if !d.IsAvailable {
		return false
	}
	if !entity.ContainsFold(d.City, f.City) || !entity.ContainsFold(d.Area, f.Area) || !entity.ContainsFold(d.Country, f.Country) {
		return false
	}
	if f.BloodGroup != "" && d.BloodGroup != f.BloodGroup {
		return false
	}
	if f.MinAge != nil && d.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && d.Age > *f.MaxAge {
		return false
	}
	return true
}

// HospitalFilter criterios de ubicación para hospitales (AND, substrings sin distinguir mayúsculas).
// El filtro por grupo sanguíneo se aplica después, en el caso de uso.
type HospitalFilter struct {
	City    string
	Area    string
	Country string
}

// Matches evalúa el filtro en memoria.
func (f HospitalFilter) Matches(h *entity.Hospital) bool {
	return entity.ContainsFold(h.City, f.City) &&
		entity.ContainsFold(h.Area, f.Area) &&
		entity.ContainsFold(h.Country, f.Country)
}
