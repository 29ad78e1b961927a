package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementación del puerto PatientRepository sobre PostgreSQL.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

const patientSelect = `
	SELECT p.id, p.user_id, u.email, p.name, p.age, p.blood_group, p.city, p.area,
	       p.phone, p.emergency_contact, p.created_at, p.updated_at
	FROM patients p JOIN users u ON u.id = p.user_id`

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var p entity.Patient
	err := row.Scan(&p.ID, &p.UserID, &p.UserEmail, &p.Name, &p.Age, &p.BloodGroup, &p.City, &p.Area,
		&p.Phone, &p.EmergencyContact, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste el perfil.
func (r *PatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	query := `
		INSERT INTO patients (id, user_id, name, age, blood_group, city, area, phone, emergency_contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, p.ID, p.UserID, p.Name, p.Age, p.BloodGroup, p.City, p.Area,
		p.Phone, p.EmergencyContact, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return wrapWrite("insert patient", err)
	}
	return nil
}

// GetByUserID obtiene el perfil del usuario.
func (r *PatientRepo) GetByUserID(ctx context.Context, userID string) (*entity.Patient, error) {
	if !validUUID(userID) {
		return nil, nil
	}
	p, err := scanPatient(r.q.QueryRow(ctx, patientSelect+` WHERE p.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

// Update persiste los campos editables.
func (r *PatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	query := `
		UPDATE patients SET name = $2, age = $3, blood_group = $4, city = $5, area = $6,
			phone = $7, emergency_contact = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Age, p.BloodGroup, p.City, p.Area,
		p.Phone, p.EmergencyContact, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	return nil
}

// DeleteByUserID elimina el perfil; sus reseñas caen por ON DELETE CASCADE.
func (r *PatientRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM patients WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

// List devuelve todos los pacientes, más recientes primero.
func (r *PatientRepo) List(ctx context.Context) ([]*entity.Patient, error) {
	return r.query(ctx, patientSelect+` ORDER BY p.created_at DESC, p.id DESC`)
}

// Recent devuelve los n pacientes más recientes.
func (r *PatientRepo) Recent(ctx context.Context, n int) ([]*entity.Patient, error) {
	return r.query(ctx, patientSelect+` ORDER BY p.created_at DESC, p.id DESC LIMIT $1`, n)
}

// Count cuenta los perfiles de paciente.
func (r *PatientRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM patients`)
}

func (r *PatientRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Patient, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// count ejecuta un SELECT COUNT(*) y devuelve el resultado como int.
func count(ctx context.Context, q Querier, sql string, args ...any) (int, error) {
	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return int(n), nil
}
