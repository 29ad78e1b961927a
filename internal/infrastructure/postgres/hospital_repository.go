package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.HospitalRepository = (*HospitalRepo)(nil)

// HospitalRepo implementación del puerto HospitalRepository sobre PostgreSQL.
// Las unidades de sangre viven en blood_units y se cargan en una segunda consulta.
type HospitalRepo struct {
	q Querier
}

// NewHospitalRepository construye el adaptador. Acepta pool o tx (Querier).
func NewHospitalRepository(q Querier) *HospitalRepo {
	return &HospitalRepo{q: q}
}

const hospitalSelect = `
	SELECT h.id, h.user_id, u.email, h.name, h.email, h.address, h.city, h.area, h.country,
	       h.contact_number, h.emergency_contact, h.website, h.average_rating, h.created_at, h.updated_at
	FROM hospitals h JOIN users u ON u.id = h.user_id`

const hospitalOrder = ` ORDER BY h.created_at DESC, h.id DESC`

func scanHospital(row pgx.Row) (*entity.Hospital, error) {
	var h entity.Hospital
	err := row.Scan(&h.ID, &h.UserID, &h.UserEmail, &h.Name, &h.Email, &h.Address, &h.City, &h.Area, &h.Country,
		&h.ContactNumber, &h.EmergencyContact, &h.Website, &h.AverageRating, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Create persiste el hospital y sus unidades en el orden recibido.
func (r *HospitalRepo) Create(ctx context.Context, h *entity.Hospital) error {
	query := `
		INSERT INTO hospitals (id, user_id, name, email, address, city, area, country, contact_number,
			emergency_contact, website, average_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query, h.ID, h.UserID, h.Name, h.Email, h.Address, h.City, h.Area, h.Country,
		h.ContactNumber, h.EmergencyContact, h.Website, h.AverageRating, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return wrapWrite("insert hospital", err)
	}
	for i, u := range h.AvailableBloodUnits {
		_, err := r.q.Exec(ctx, `
			INSERT INTO blood_units (hospital_id, blood_group, position, units, critical_level)
			VALUES ($1, $2, $3, $4, $5)`, h.ID, u.BloodGroup, i, u.Units, u.CriticalLevel)
		if err != nil {
			return wrapWrite("insert blood unit", err)
		}
	}
	return nil
}

// GetByID obtiene un hospital con sus unidades.
func (r *HospitalRepo) GetByID(ctx context.Context, id string) (*entity.Hospital, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, hospitalSelect+` WHERE h.id = $1`, id)
}

// GetByUserID obtiene el perfil del usuario.
func (r *HospitalRepo) GetByUserID(ctx context.Context, userID string) (*entity.Hospital, error) {
	if !validUUID(userID) {
		return nil, nil
	}
	return r.getOne(ctx, hospitalSelect+` WHERE h.user_id = $1`, userID)
}

func (r *HospitalRepo) getOne(ctx context.Context, sql string, arg any) (*entity.Hospital, error) {
	h, err := scanHospital(r.q.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hospital: %w", err)
	}
	if err := r.loadUnits(ctx, []*entity.Hospital{h}); err != nil {
		return nil, err
	}
	return h, nil
}

// Update persiste solo los campos de perfil.
func (r *HospitalRepo) Update(ctx context.Context, h *entity.Hospital) error {
	query := `
		UPDATE hospitals SET name = $2, email = $3, address = $4, city = $5, area = $6, country = $7,
			contact_number = $8, emergency_contact = $9, website = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, h.ID, h.Name, h.Email, h.Address, h.City, h.Area, h.Country,
		h.ContactNumber, h.EmergencyContact, h.Website, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update hospital: %w", err)
	}
	return nil
}

// UpdateBloodUnit persiste units y criticalLevel de un grupo.
func (r *HospitalRepo) UpdateBloodUnit(ctx context.Context, hospitalID string, u entity.BloodUnit) error {
	query := `
		UPDATE blood_units SET units = $3, critical_level = $4
		WHERE hospital_id = $1 AND blood_group = $2`
	tag, err := r.q.Exec(ctx, query, hospitalID, u.BloodGroup, u.Units, u.CriticalLevel)
	if err != nil {
		return fmt.Errorf("update blood unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update blood unit: grupo %s no existe en hospital %s", u.BloodGroup, hospitalID)
	}
	if _, err := r.q.Exec(ctx, `UPDATE hospitals SET updated_at = NOW() WHERE id = $1`, hospitalID); err != nil {
		return fmt.Errorf("touch hospital: %w", err)
	}
	return nil
}

// UpdateAverageRating persiste el promedio derivado; NULL si no hay reseñas aprobadas.
func (r *HospitalRepo) UpdateAverageRating(ctx context.Context, hospitalID string, avg decimal.NullDecimal) error {
	if _, err := r.q.Exec(ctx, `UPDATE hospitals SET average_rating = $2 WHERE id = $1`, hospitalID, avg); err != nil {
		return fmt.Errorf("update average rating: %w", err)
	}
	return nil
}

// DeleteByUserID elimina el perfil; blood_units y reviews caen por ON DELETE CASCADE.
func (r *HospitalRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM hospitals WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete hospital: %w", err)
	}
	return nil
}

// List devuelve todos los hospitales, más recientes primero.
func (r *HospitalRepo) List(ctx context.Context) ([]*entity.Hospital, error) {
	return r.query(ctx, hospitalSelect+hospitalOrder)
}

// Search filtra por ubicación con substring sin distinguir mayúsculas.
func (r *HospitalRepo) Search(ctx context.Context, f repository.HospitalFilter) ([]*entity.Hospital, error) {
	var w whereBuilder
	w.contains("h.city", f.City)
	w.contains("h.area", f.Area)
	w.contains("h.country", f.Country)
	return r.query(ctx, hospitalSelect+w.sql()+hospitalOrder, w.args...)
}

// Recent devuelve los n hospitales más recientes.
func (r *HospitalRepo) Recent(ctx context.Context, n int) ([]*entity.Hospital, error) {
	return r.query(ctx, hospitalSelect+hospitalOrder+` LIMIT $1`, n)
}

// Count cuenta los hospitales.
func (r *HospitalRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM hospitals`)
}

// CountUnitsAtOrBelow cuenta pares (hospital, grupo) con units <= threshold.
func (r *HospitalRepo) CountUnitsAtOrBelow(ctx context.Context, threshold int) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM blood_units WHERE units <= $1`, threshold)
}

func (r *HospitalRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Hospital, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	list := make([]*entity.Hospital, 0)
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan hospital: %w", err)
		}
		list = append(list, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	if err := r.loadUnits(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadUnits carga en una sola consulta las unidades de todos los hospitales recibidos.
func (r *HospitalRepo) loadUnits(ctx context.Context, hospitals []*entity.Hospital) error {
	if len(hospitals) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Hospital, len(hospitals))
	ids := make([]string, 0, len(hospitals))
	for _, h := range hospitals {
		h.AvailableBloodUnits = make([]entity.BloodUnit, 0, len(entity.BloodGroups))
		byID[h.ID] = h
		ids = append(ids, h.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT hospital_id, blood_group, units, critical_level
		FROM blood_units
		WHERE hospital_id = ANY($1::uuid[])
		ORDER BY hospital_id, position`, ids)
	if err != nil {
		return fmt.Errorf("load blood units: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var hospitalID string
		var u entity.BloodUnit
		if err := rows.Scan(&hospitalID, &u.BloodGroup, &u.Units, &u.CriticalLevel); err != nil {
			return fmt.Errorf("scan blood unit: %w", err)
		}
		if h, ok := byID[hospitalID]; ok {
			h.AvailableBloodUnits = append(h.AvailableBloodUnits, u)
		}
	}
	return rows.Err()
}
