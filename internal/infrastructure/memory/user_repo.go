package memory

import (
	"context"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa repository.UserRepository en memoria.
type UserRepo struct{ handle }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.do(func(d *dataset) error {
		for _, existing := range d.users {
			if existing.Email == u.Email {
				return conflict("insert user")
			}
		}
		d.users[u.ID] = *u
		d.track(u.ID)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(d *dataset) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(d *dataset) error {
		for _, u := range d.users {
			if u.Email == email {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.do(func(d *dataset) error {
		out = make([]*entity.User, 0, len(d.users))
		for _, u := range d.users {
			u := u
			out = append(out, &u)
		}
		sortNewest(d, out, func(u *entity.User) (string, time.Time) { return u.ID, u.CreatedAt })
		return nil
	})
	return out, err
}

func (r *UserRepo) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	return r.do(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return nil
		}
		u.IsActive = active
		u.UpdatedAt = at
		d.users[id] = u
		return nil
	})
}

// Delete elimina el usuario y, como ON DELETE CASCADE, su perfil.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.do(func(d *dataset) error {
		delete(d.users, id)
		for pid, p := range d.patients {
			if p.UserID == id {
				deletePatient(d, pid)
			}
		}
		for did, dn := range d.donors {
			if dn.UserID == id {
				delete(d.donors, did)
			}
		}
		for hid, h := range d.hospitals {
			if h.UserID == id {
				deleteHospital(d, hid)
			}
		}
		for aid, a := range d.admins {
			if a.UserID == id {
				delete(d.admins, aid)
			}
		}
		return nil
	})
}
