package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.HospitalRepository = (*HospitalRepo)(nil)

// HospitalRepo implementa repository.HospitalRepository en memoria.
type HospitalRepo struct{ handle }

func (r *HospitalRepo) Create(_ context.Context, h *entity.Hospital) error {
	return r.do(func(d *dataset) error {
		for _, existing := range d.hospitals {
			if existing.UserID == h.UserID {
				return conflict("insert hospital")
			}
		}
		d.hospitals[h.ID] = copyHospital(*h)
		d.track(h.ID)
		return nil
	})
}

func (r *HospitalRepo) GetByID(_ context.Context, id string) (*entity.Hospital, error) {
	var out *entity.Hospital
	err := r.do(func(d *dataset) error {
		if h, ok := d.hospitals[id]; ok {
			out = d.hospitalView(h)
		}
		return nil
	})
	return out, err
}

func (r *HospitalRepo) GetByUserID(_ context.Context, userID string) (*entity.Hospital, error) {
	var out *entity.Hospital
	err := r.do(func(d *dataset) error {
		for _, h := range d.hospitals {
			if h.UserID == userID {
				out = d.hospitalView(h)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update persiste solo los campos de perfil.
func (r *HospitalRepo) Update(_ context.Context, h *entity.Hospital) error {
	return r.do(func(d *dataset) error {
		cur, ok := d.hospitals[h.ID]
		if !ok {
			return nil
		}
		cur.Name, cur.Email, cur.Address = h.Name, h.Email, h.Address
		cur.City, cur.Area, cur.Country = h.City, h.Area, h.Country
		cur.ContactNumber, cur.EmergencyContact, cur.Website = h.ContactNumber, h.EmergencyContact, h.Website
		cur.UpdatedAt = h.UpdatedAt
		d.hospitals[h.ID] = cur
		return nil
	})
}

func (r *HospitalRepo) UpdateBloodUnit(_ context.Context, hospitalID string, unit entity.BloodUnit) error {
	return r.do(func(d *dataset) error {
		h, ok := d.hospitals[hospitalID]
		if !ok {
			return fmt.Errorf("update blood unit: hospital %s not found", hospitalID)
		}
		h = copyHospital(h)
		u := h.Unit(unit.BloodGroup)
		if u == nil {
			return fmt.Errorf("update blood unit: group %s not found", unit.BloodGroup)
		}
		*u = unit
		h.UpdatedAt = time.Now().UTC()
		d.hospitals[hospitalID] = h
		return nil
	})
}

func (r *HospitalRepo) UpdateAverageRating(_ context.Context, hospitalID string, avg decimal.NullDecimal) error {
	return r.do(func(d *dataset) error {
		h, ok := d.hospitals[hospitalID]
		if !ok {
			return nil
		}
		h.AverageRating = avg
		d.hospitals[hospitalID] = h
		return nil
	})
}

func (r *HospitalRepo) DeleteByUserID(_ context.Context, userID string) error {
	return r.do(func(d *dataset) error {
		for id, h := range d.hospitals {
			if h.UserID == userID {
				deleteHospital(d, id)
			}
		}
		return nil
	})
}

func (r *HospitalRepo) List(_ context.Context) ([]*entity.Hospital, error) {
	return r.find(0, func(*entity.Hospital) bool { return true })
}

func (r *HospitalRepo) Search(_ context.Context, f repository.HospitalFilter) ([]*entity.Hospital, error) {
	return r.find(0, f.Matches)
}

func (r *HospitalRepo) Recent(_ context.Context, n int) ([]*entity.Hospital, error) {
	return r.find(n, func(*entity.Hospital) bool { return true })
}

func (r *HospitalRepo) Count(_ context.Context) (int, error) {
	out, err := r.find(0, func(*entity.Hospital) bool { return true })
	return len(out), err
}

func (r *HospitalRepo) CountUnitsAtOrBelow(_ context.Context, threshold int) (int, error) {
	var n int
	err := r.do(func(d *dataset) error {
		for _, h := range d.hospitals {
			for _, u := range h.AvailableBloodUnits {
				if u.Units <= threshold {
					n++
				}
			}
		}
		return nil
	})
	return n, err
}

func (r *HospitalRepo) find(n int, keep func(*entity.Hospital) bool) ([]*entity.Hospital, error) {
	var out []*entity.Hospital
	err := r.do(func(d *dataset) error {
		out = make([]*entity.Hospital, 0)
		for _, h := range d.hospitals {
			if v := d.hospitalView(h); keep(v) {
				out = append(out, v)
			}
		}
		sortNewest(d, out, func(h *entity.Hospital) (string, time.Time) { return h.ID, h.CreatedAt })
		out = limit(out, n)
		return nil
	})
	return out, err
}

func (d *dataset) hospitalView(h entity.Hospital) *entity.Hospital {
	c := copyHospital(h)
	c.UserEmail = d.users[h.UserID].Email
	return &c
}

// deleteHospital borra el hospital y sus reseñas (ON DELETE CASCADE).
func deleteHospital(d *dataset, id string) {
	delete(d.hospitals, id)
	for rid, rv := range d.reviews {
		if rv.HospitalID == id {
			delete(d.reviews, rid)
		}
	}
}
