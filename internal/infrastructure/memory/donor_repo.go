package memory

import (
	"context"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.DonorRepository = (*DonorRepo)(nil)

// DonorRepo implementa repository.DonorRepository en memoria.
type DonorRepo struct{ handle }

func (r *DonorRepo) Create(_ context.Context, dn *entity.Donor) error {
	return r.do(func(d *dataset) error {
		for _, existing := range d.donors {
			if existing.UserID == dn.UserID {
				return conflict("insert donor")
			}
		}
		d.donors[dn.ID] = copyDonor(*dn)
		d.track(dn.ID)
		return nil
	})
}

func (r *DonorRepo) GetByUserID(_ context.Context, userID string) (*entity.Donor, error) {
	var out *entity.Donor
	err := r.do(func(d *dataset) error {
		for _, dn := range d.donors {
			if dn.UserID == userID {
				out = d.donorView(dn)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *DonorRepo) Update(_ context.Context, dn *entity.Donor) error {
	return r.do(func(d *dataset) error {
		if _, ok := d.donors[dn.ID]; ok {
			d.donors[dn.ID] = copyDonor(*dn)
		}
		return nil
	})
}

func (r *DonorRepo) DeleteByUserID(_ context.Context, userID string) error {
	return r.do(func(d *dataset) error {
		for id, dn := range d.donors {
			if dn.UserID == userID {
				delete(d.donors, id)
			}
		}
		return nil
	})
}

func (r *DonorRepo) List(ctx context.Context) ([]*entity.Donor, error) {
	return r.find(0, func(*entity.Donor) bool { return true })
}

func (r *DonorRepo) Search(_ context.Context, f repository.DonorFilter) ([]*entity.Donor, error) {
	return r.find(0, f.Matches)
}

func (r *DonorRepo) Recent(_ context.Context, n int) ([]*entity.Donor, error) {
	return r.find(n, func(*entity.Donor) bool { return true })
}

func (r *DonorRepo) Count(_ context.Context) (int, error) {
	out, err := r.find(0, func(*entity.Donor) bool { return true })
	return len(out), err
}

func (r *DonorRepo) CountAvailable(_ context.Context) (int, error) {
	out, err := r.find(0, func(dn *entity.Donor) bool { return dn.IsAvailable })
	return len(out), err
}

func (r *DonorRepo) find(n int, keep func(*entity.Donor) bool) ([]*entity.Donor, error) {
	var out []*entity.Donor
	err := r.do(func(d *dataset) error {
		out = make([]*entity.Donor, 0)
		for _, dn := range d.donors {
			if v := d.donorView(dn); keep(v) {
				out = append(out, v)
			}
		}
		sortNewest(d, out, func(dn *entity.Donor) (string, time.Time) { return dn.ID, dn.CreatedAt })
		out = limit(out, n)
		return nil
	})
	return out, err
}

func (d *dataset) donorView(dn entity.Donor) *entity.Donor {
	c := copyDonor(dn)
	c.UserEmail = d.users[dn.UserID].Email
	return &c
}
