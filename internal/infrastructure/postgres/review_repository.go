package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo implementación del puerto ReviewRepository sobre PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador. Acepta pool o tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

const reviewSelect = `
	SELECT r.id, r.patient_id, r.hospital_id, r.rating, r.comment, r.is_approved,
	       COALESCE(p.name, ''), COALESCE(h.name, ''), COALESCE(h.address, ''),
	       r.created_at, r.updated_at
	FROM reviews r
	LEFT JOIN patients p ON p.id = r.patient_id
	LEFT JOIN hospitals h ON h.id = r.hospital_id`

const reviewOrder = ` ORDER BY r.created_at DESC, r.id DESC`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var rv entity.Review
	err := row.Scan(&rv.ID, &rv.PatientID, &rv.HospitalID, &rv.Rating, &rv.Comment, &rv.IsApproved,
		&rv.PatientName, &rv.HospitalName, &rv.HospitalAddress, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create persiste la reseña. El UNIQUE (patient_id, hospital_id) se reporta como domain.ErrConflict.
func (r *ReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	query := `
		INSERT INTO reviews (id, patient_id, hospital_id, rating, comment, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, rv.ID, rv.PatientID, rv.HospitalID, rv.Rating, rv.Comment, rv.IsApproved,
		rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		return wrapWrite("insert review", err)
	}
	return nil
}

// GetByID obtiene una reseña con nombres poblados.
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, reviewSelect+` WHERE r.id = $1`, id)
}

// FindByPatientAndHospital devuelve la reseña existente del par, o nil.
func (r *ReviewRepo) FindByPatientAndHospital(ctx context.Context, patientID, hospitalID string) (*entity.Review, error) {
	if !validUUID(patientID) || !validUUID(hospitalID) {
		return nil, nil
	}
	return r.getOne(ctx, reviewSelect+` WHERE r.patient_id = $1 AND r.hospital_id = $2`, patientID, hospitalID)
}

func (r *ReviewRepo) getOne(ctx context.Context, sql string, args ...any) (*entity.Review, error) {
	rv, err := scanReview(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

// SetApproved cambia el estado de moderación.
func (r *ReviewRepo) SetApproved(ctx context.Context, id string, approved bool, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE reviews SET is_approved = $2, updated_at = $3 WHERE id = $1`, id, approved, at); err != nil {
		return fmt.Errorf("set review approved: %w", err)
	}
	return nil
}

// Delete elimina la reseña.
func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// ListApprovedByHospital reseñas públicas de un hospital.
func (r *ReviewRepo) ListApprovedByHospital(ctx context.Context, hospitalID string) ([]*entity.Review, error) {
	if !validUUID(hospitalID) {
		return []*entity.Review{}, nil
	}
	return r.query(ctx, reviewSelect+` WHERE r.hospital_id = $1 AND r.is_approved`+reviewOrder, hospitalID)
}

// ListByPatient reseñas escritas por el paciente, aprobadas o no.
func (r *ReviewRepo) ListByPatient(ctx context.Context, patientID string) ([]*entity.Review, error) {
	if !validUUID(patientID) {
		return []*entity.Review{}, nil
	}
	return r.query(ctx, reviewSelect+` WHERE r.patient_id = $1`+reviewOrder, patientID)
}

// ListAll todas las reseñas para moderación.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]*entity.Review, error) {
	return r.query(ctx, reviewSelect+reviewOrder)
}

// ApprovedRatings calificaciones aprobadas del hospital.
func (r *ReviewRepo) ApprovedRatings(ctx context.Context, hospitalID string) ([]int, error) {
	rows, err := r.q.Query(ctx, `SELECT rating FROM reviews WHERE hospital_id = $1 AND is_approved`, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("approved ratings: %w", err)
	}
	defer rows.Close()
	ratings := make([]int, 0)
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, n)
	}
	return ratings, rows.Err()
}

// HospitalIDsByPatient hospitales distintos reseñados por el paciente.
func (r *ReviewRepo) HospitalIDsByPatient(ctx context.Context, patientID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT hospital_id FROM reviews WHERE patient_id = $1`, patientID)
	if err != nil {
		return nil, fmt.Errorf("hospital ids by patient: %w", err)
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan hospital id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Recent devuelve las n reseñas más recientes.
func (r *ReviewRepo) Recent(ctx context.Context, n int) ([]*entity.Review, error) {
	return r.query(ctx, reviewSelect+reviewOrder+` LIMIT $1`, n)
}

// Count cuenta todas las reseñas.
func (r *ReviewRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM reviews`)
}

func (r *ReviewRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Review, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, rv)
	}
	return list, rows.Err()
}
