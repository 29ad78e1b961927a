package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.DonorRepository = (*DonorRepo)(nil)

// DonorRepo implementación del puerto DonorRepository sobre PostgreSQL.
type DonorRepo struct {
	q Querier
}

// NewDonorRepository construye el adaptador. Acepta pool o tx (Querier).
func NewDonorRepository(q Querier) *DonorRepo {
	return &DonorRepo{q: q}
}

const donorSelect = `
	SELECT d.id, d.user_id, u.email, d.name, d.age, d.blood_group, d.city, d.area, d.country, d.phone,
	       d.last_donation_date, d.is_available, d.health_conditions, d.can_travel, d.created_at, d.updated_at
	FROM donors d JOIN users u ON u.id = d.user_id`

const donorOrder = ` ORDER BY d.created_at DESC, d.id DESC`

func scanDonor(row pgx.Row) (*entity.Donor, error) {
	var d entity.Donor
	err := row.Scan(&d.ID, &d.UserID, &d.UserEmail, &d.Name, &d.Age, &d.BloodGroup, &d.City, &d.Area, &d.Country,
		&d.Phone, &d.LastDonationDate, &d.IsAvailable, &d.HealthConditions, &d.CanTravel, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func healthConditions(d *entity.Donor) []string {
	if d.HealthConditions == nil {
		return []string{}
	}
	return d.HealthConditions
}

// Create persiste el perfil.
func (r *DonorRepo) Create(ctx context.Context, d *entity.Donor) error {
	query := `
		INSERT INTO donors (id, user_id, name, age, blood_group, city, area, country, phone,
			last_donation_date, is_available, health_conditions, can_travel, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query, d.ID, d.UserID, d.Name, d.Age, d.BloodGroup, d.City, d.Area, d.Country, d.Phone,
		d.LastDonationDate, d.IsAvailable, healthConditions(d), d.CanTravel, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return wrapWrite("insert donor", err)
	}
	return nil
}

// GetByUserID obtiene el perfil del usuario.
func (r *DonorRepo) GetByUserID(ctx context.Context, userID string) (*entity.Donor, error) {
	if !validUUID(userID) {
		return nil, nil
	}
	d, err := scanDonor(r.q.QueryRow(ctx, donorSelect+` WHERE d.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donor: %w", err)
	}
	return d, nil
}

// Update persiste los campos editables.
func (r *DonorRepo) Update(ctx context.Context, d *entity.Donor) error {
	query := `
		UPDATE donors SET name = $2, age = $3, blood_group = $4, city = $5, area = $6, country = $7,
			phone = $8, last_donation_date = $9, is_available = $10, health_conditions = $11,
			can_travel = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, d.Age, d.BloodGroup, d.City, d.Area, d.Country,
		d.Phone, d.LastDonationDate, d.IsAvailable, healthConditions(d), d.CanTravel, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	return nil
}

// DeleteByUserID elimina el perfil.
func (r *DonorRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM donors WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete donor: %w", err)
	}
	return nil
}

// List devuelve todos los donantes, más recientes primero.
func (r *DonorRepo) List(ctx context.Context) ([]*entity.Donor, error) {
	return r.query(ctx, donorSelect+donorOrder)
}

// Search aplica el filtro con ILIKE para ubicación, igualdad para el grupo y rango inclusivo de edad.
func (r *DonorRepo) Search(ctx context.Context, f repository.DonorFilter) ([]*entity.Donor, error) {
	var w whereBuilder
	w.add("d.is_available = $%d", true)
	w.contains("d.city", f.City)
	w.contains("d.area", f.Area)
	w.contains("d.country", f.Country)
	if f.BloodGroup != "" {
		w.add("d.blood_group = $%d", f.BloodGroup)
	}
	if f.MinAge != nil {
		w.add("d.age >= $%d", *f.MinAge)
	}
	if f.MaxAge != nil {
		w.add("d.age <= $%d", *f.MaxAge)
	}
	return r.query(ctx, donorSelect+w.sql()+donorOrder, w.args...)
}

// Recent devuelve los n donantes más recientes.
func (r *DonorRepo) Recent(ctx context.Context, n int) ([]*entity.Donor, error) {
	return r.query(ctx, donorSelect+donorOrder+` LIMIT $1`, n)
}

// Count cuenta los perfiles de donante.
func (r *DonorRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM donors`)
}

// CountAvailable cuenta los donantes con isAvailable = true.
func (r *DonorRepo) CountAvailable(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM donors WHERE is_available`)
}

func (r *DonorRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Donor, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Donor, 0)
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
