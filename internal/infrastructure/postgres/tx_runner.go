package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log zerolog.Logger) *TxRunner {
	return &TxRunner{pool: pool, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un fallo del Rollback se registra pero nunca reemplaza el error original.
func (r *TxRunner) Run(ctx context.Context, fn func(s ports.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.log.Error().Err(err).Msg("rollback transaction")
		}
	}()

	if err := fn(NewStores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewStores construye todos los repositorios sobre q (pool o tx).
func NewStores(q Querier) ports.Stores {
	return ports.Stores{
		Users:     NewUserRepository(q),
		Patients:  NewPatientRepository(q),
		Donors:    NewDonorRepository(q),
		Hospitals: NewHospitalRepository(q),
		Admins:    NewAdminRepository(q),
		Reviews:   NewReviewRepository(q),
	}
}
