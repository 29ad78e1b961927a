package ports

import (
	"context"

	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

// Stores agrupa los repositorios atados a una misma transacción.
type Stores struct {
	Users     repository.UserRepository
	Patients  repository.PatientRepository
	Donors    repository.DonorRepository
	Hospitals repository.HospitalRepository
	Admins    repository.AdminRepository
	Reviews   repository.ReviewRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(s Stores) error) error
}
