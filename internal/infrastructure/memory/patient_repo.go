package memory

import (
	"context"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementa repository.PatientRepository en memoria.
type PatientRepo struct{ handle }

func (r *PatientRepo) Create(_ context.Context, p *entity.Patient) error {
	return r.do(func(d *dataset) error {
		for _, existing := range d.patients {
			if existing.UserID == p.UserID {
				return conflict("insert patient")
			}
		}
		d.patients[p.ID] = copyPatient(*p)
		d.track(p.ID)
		return nil
	})
}

func (r *PatientRepo) GetByUserID(_ context.Context, userID string) (*entity.Patient, error) {
	var out *entity.Patient
	err := r.do(func(d *dataset) error {
		for _, p := range d.patients {
			if p.UserID == userID {
				out = d.patientView(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *PatientRepo) Update(_ context.Context, p *entity.Patient) error {
	return r.do(func(d *dataset) error {
		if _, ok := d.patients[p.ID]; ok {
			d.patients[p.ID] = copyPatient(*p)
		}
		return nil
	})
}

func (r *PatientRepo) DeleteByUserID(_ context.Context, userID string) error {
	return r.do(func(d *dataset) error {
		for id, p := range d.patients {
			if p.UserID == userID {
				deletePatient(d, id)
			}
		}
		return nil
	})
}

func (r *PatientRepo) List(ctx context.Context) ([]*entity.Patient, error) {
	return r.Recent(ctx, 0)
}

func (r *PatientRepo) Recent(_ context.Context, n int) ([]*entity.Patient, error) {
	var out []*entity.Patient
	err := r.do(func(d *dataset) error {
		out = make([]*entity.Patient, 0, len(d.patients))
		for _, p := range d.patients {
			out = append(out, d.patientView(p))
		}
		sortNewest(d, out, func(p *entity.Patient) (string, time.Time) { return p.ID, p.CreatedAt })
		out = limit(out, n)
		return nil
	})
	return out, err
}

func (r *PatientRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.do(func(d *dataset) error {
		n = len(d.patients)
		return nil
	})
	return n, err
}

func (d *dataset) patientView(p entity.Patient) *entity.Patient {
	c := copyPatient(p)
	c.UserEmail = d.users[p.UserID].Email
	return &c
}

// deletePatient borra el perfil y sus reseñas (ON DELETE CASCADE).
func deletePatient(d *dataset, id string) {
	delete(d.patients, id)
	for rid, rv := range d.reviews {
		if rv.PatientID == id {
			delete(d.reviews, rid)
		}
	}
}
