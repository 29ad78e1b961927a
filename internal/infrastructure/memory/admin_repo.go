package memory

import (
	"context"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementa repository.AdminRepository en memoria.
type AdminRepo struct{ handle }

func (r *AdminRepo) Create(_ context.Context, a *entity.Admin) error {
	return r.do(func(d *dataset) error {
		for _, existing := range d.admins {
			if existing.UserID == a.UserID {
				return conflict("insert admin")
			}
		}
		d.admins[a.ID] = copyAdmin(*a)
		d.track(a.ID)
		return nil
	})
}

func (r *AdminRepo) GetByUserID(_ context.Context, userID string) (*entity.Admin, error) {
	var out *entity.Admin
	err := r.do(func(d *dataset) error {
		for _, a := range d.admins {
			if a.UserID == userID {
				c := copyAdmin(a)
				c.UserEmail = d.users[a.UserID].Email
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *AdminRepo) Update(_ context.Context, a *entity.Admin) error {
	return r.do(func(d *dataset) error {
		if _, ok := d.admins[a.ID]; ok {
			d.admins[a.ID] = copyAdmin(*a)
		}
		return nil
	})
}

func (r *AdminRepo) DeleteByUserID(_ context.Context, userID string) error {
	return r.do(func(d *dataset) error {
		for id, a := range d.admins {
			if a.UserID == userID {
				delete(d.admins, id)
			}
		}
		return nil
	})
}
