package memory

import (
	"context"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo implementa repository.ReviewRepository en memoria.
type ReviewRepo struct{ handle }

func (r *ReviewRepo) Create(_ context.Context, rv *entity.Review) error {
	return r.do(func(d *dataset) error {
		for _, existing := range d.reviews {
			if existing.PatientID == rv.PatientID && existing.HospitalID == rv.HospitalID {
				return conflict("insert review")
			}
		}
		stored := *rv
		stored.PatientName, stored.HospitalName, stored.HospitalAddress = "", "", ""
		d.reviews[rv.ID] = stored
		d.track(rv.ID)
		return nil
	})
}

func (r *ReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	var out *entity.Review
	err := r.do(func(d *dataset) error {
		if rv, ok := d.reviews[id]; ok {
			out = d.reviewView(rv)
		}
		return nil
	})
	return out, err
}

func (r *ReviewRepo) FindByPatientAndHospital(_ context.Context, patientID, hospitalID string) (*entity.Review, error) {
	out, err := r.find(0, func(rv *entity.Review) bool {
		return rv.PatientID == patientID && rv.HospitalID == hospitalID
	})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return out[0], nil
}

func (r *ReviewRepo) SetApproved(_ context.Context, id string, approved bool, at time.Time) error {
	return r.do(func(d *dataset) error {
		rv, ok := d.reviews[id]
		if !ok {
			return nil
		}
		rv.IsApproved = approved
		rv.UpdatedAt = at
		d.reviews[id] = rv
		return nil
	})
}

func (r *ReviewRepo) Delete(_ context.Context, id string) error {
	return r.do(func(d *dataset) error {
		delete(d.reviews, id)
		return nil
	})
}

func (r *ReviewRepo) ListApprovedByHospital(_ context.Context, hospitalID string) ([]*entity.Review, error) {
	return r.find(0, func(rv *entity.Review) bool { return rv.HospitalID == hospitalID && rv.IsApproved })
}

func (r *ReviewRepo) ListByPatient(_ context.Context, patientID string) ([]*entity.Review, error) {
	return r.find(0, func(rv *entity.Review) bool { return rv.PatientID == patientID })
}

func (r *ReviewRepo) ListAll(_ context.Context) ([]*entity.Review, error) {
	return r.find(0, func(*entity.Review) bool { return true })
}

func (r *ReviewRepo) ApprovedRatings(ctx context.Context, hospitalID string) ([]int, error) {
	rs, err := r.ListApprovedByHospital(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(rs))
	for _, rv := range rs {
		out = append(out, rv.Rating)
	}
	return out, nil
}

func (r *ReviewRepo) HospitalIDsByPatient(ctx context.Context, patientID string) ([]string, error) {
	rs, err := r.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(rs))
	for _, rv := range rs {
		if !seen[rv.HospitalID] {
			seen[rv.HospitalID] = true
			out = append(out, rv.HospitalID)
		}
	}
	return out, nil
}

func (r *ReviewRepo) Recent(_ context.Context, n int) ([]*entity.Review, error) {
	return r.find(n, func(*entity.Review) bool { return true })
}

func (r *ReviewRepo) Count(ctx context.Context) (int, error) {
	rs, err := r.ListAll(ctx)
	return len(rs), err
}

func (r *ReviewRepo) find(n int, keep func(*entity.Review) bool) ([]*entity.Review, error) {
	var out []*entity.Review
	err := r.do(func(d *dataset) error {
		out = make([]*entity.Review, 0)
		for _, rv := range d.reviews {
			if v := d.reviewView(rv); keep(v) {
				out = append(out, v)
			}
		}
		sortNewest(d, out, func(rv *entity.Review) (string, time.Time) { return rv.ID, rv.CreatedAt })
		out = limit(out, n)
		return nil
	})
	return out, err
}

func (d *dataset) reviewView(rv entity.Review) *entity.Review {
	c := rv
	c.PatientName = d.patients[rv.PatientID].Name
	h := d.hospitals[rv.HospitalID]
	c.HospitalName, c.HospitalAddress = h.Name, h.Address
	return &c
}
