package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// ReviewRepository define el puerto de persistencia para reseñas.
// Los listados vienen ordenados por fecha de creación descendente y con nombres poblados.
type ReviewRepository interface {
	// Create devuelve domain.ErrConflict si ya existe una reseña para (paciente, hospital).
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	FindByPatientAndHospital(ctx context.Context, patientID, hospitalID string) (*entity.Review, error)
	SetApproved(ctx context.Context, id string, approved bool, at time.Time) error
	Delete(ctx context.Context, id string) error
	ListApprovedByHospital(ctx context.Context, hospitalID string) ([]*entity.Review, error)
	ListByPatient(ctx context.Context, patientID string) ([]*entity.Review, error)
	ListAll(ctx context.Context) ([]*entity.Review, error)
	// ApprovedRatings devuelve las calificaciones de las reseñas aprobadas del hospital.
	ApprovedRatings(ctx context.Context, hospitalID string) ([]int, error)
	// HospitalIDsByPatient hospitales distintos reseñados por el paciente.
	HospitalIDsByPatient(ctx context.Context, patientID string) ([]string, error)
	Recent(ctx context.Context, limit int) ([]*entity.Review, error)
	Count(ctx context.Context) (int, error)
}
