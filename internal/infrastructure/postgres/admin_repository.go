package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación del puerto AdminRepository sobre PostgreSQL.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador. Acepta pool o tx (Querier).
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// Create persiste el perfil.
func (r *AdminRepo) Create(ctx context.Context, a *entity.Admin) error {
	query := `
		INSERT INTO admins (id, user_id, name, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	perms := a.Permissions
	if perms == nil {
		perms = []string{}
	}
	if _, err := r.q.Exec(ctx, query, a.ID, a.UserID, a.Name, perms, a.CreatedAt, a.UpdatedAt); err != nil {
		return wrapWrite("insert admin", err)
	}
	return nil
}

// GetByUserID obtiene el perfil del usuario.
func (r *AdminRepo) GetByUserID(ctx context.Context, userID string) (*entity.Admin, error) {
	if !validUUID(userID) {
		return nil, nil
	}
	query := `
		SELECT a.id, a.user_id, u.email, a.name, a.permissions, a.created_at, a.updated_at
		FROM admins a JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1`
	var a entity.Admin
	err := r.q.QueryRow(ctx, query, userID).Scan(&a.ID, &a.UserID, &a.UserEmail, &a.Name, &a.Permissions, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

// Update persiste nombre y permisos.
func (r *AdminRepo) Update(ctx context.Context, a *entity.Admin) error {
	_, err := r.q.Exec(ctx, `UPDATE admins SET name = $2, permissions = $3, updated_at = $4 WHERE id = $1`,
		a.ID, a.Name, a.Permissions, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return nil
}

// DeleteByUserID elimina el perfil.
func (r *AdminRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM admins WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}
