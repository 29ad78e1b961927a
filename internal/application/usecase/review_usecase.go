package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

const (
	msgMissingReviewFields = "Please provide hospital ID, rating, and comment"
	msgAlreadyReviewed     = "You have already reviewed this hospital"
	msgReviewNotFound      = "Review not found"
)

// ReviewUseCase casos de uso de reseñas. Mantiene el invariante:
// Hospital.AverageRating == media de las reseñas aprobadas (NULL si no hay).
type ReviewUseCase struct {
	reviews   repository.ReviewRepository
	patients  repository.PatientRepository
	hospitals repository.HospitalRepository
	locker    ports.HospitalLocker
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(
	reviews repository.ReviewRepository,
	patients repository.PatientRepository,
	hospitals repository.HospitalRepository,
	locker ports.HospitalLocker,
) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, patients: patients, hospitals: hospitals, locker: locker}
}

// CreateReview registra la reseña del paciente autenticado (aprobada por defecto) y recalcula el rating.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, userID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	in.Normalize()
	if in.HospitalID == "" || in.Rating == nil || in.Comment == "" {
		return nil, domain.Validation(msgMissingReviewFields)
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	patient, err := uc.patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.NotFound(msgPatientNotFound)
	}
	hospital, err := uc.hospitals.GetByID(ctx, in.HospitalID)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, domain.NotFound(msgHospitalNotFound)
	}
	existing, err := uc.reviews.FindByPatientAndHospital(ctx, patient.ID, hospital.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict(msgAlreadyReviewed)
	}

	now := time.Now().UTC()
	review := &entity.Review{
		ID:              uuid.New().String(),
		PatientID:       patient.ID,
		HospitalID:      hospital.ID,
		Rating:          *in.Rating,
		Comment:         in.Comment,
		IsApproved:      true,
		PatientName:     patient.Name,
		HospitalName:    hospital.Name,
		HospitalAddress: hospital.Address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict(msgAlreadyReviewed)
		}
		return nil, err
	}
	if err := uc.RecomputeHospitalRating(ctx, hospital.ID); err != nil {
		return nil, err
	}
	return dto.NewReviewResponse(review), nil
}

// ListHospitalReviews reseñas aprobadas de un hospital (público).
func (uc *ReviewUseCase) ListHospitalReviews(ctx context.Context, hospitalID string) ([]*dto.ReviewResponse, error) {
	rs, err := uc.reviews.ListApprovedByHospital(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return dto.NewReviewList(rs), nil
}

// ListMyReviews reseñas del paciente autenticado.
func (uc *ReviewUseCase) ListMyReviews(ctx context.Context, userID string) ([]*dto.ReviewResponse, error) {
	patient, err := uc.patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.NotFound(msgPatientNotFound)
	}
	rs, err := uc.reviews.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewReviewList(rs), nil
}

// ListAll todas las reseñas (admin).
func (uc *ReviewUseCase) ListAll(ctx context.Context) ([]*dto.ReviewResponse, error) {
	rs, err := uc.reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewReviewList(rs), nil
}

// ToggleApproval invierte isApproved y recalcula el rating del hospital.
func (uc *ReviewUseCase) ToggleApproval(ctx context.Context, reviewID string) (*dto.ReviewResponse, error) {
	review, err := uc.load(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	review.IsApproved = !review.IsApproved
	review.UpdatedAt = time.Now().UTC()
	if err := uc.reviews.SetApproved(ctx, review.ID, review.IsApproved, review.UpdatedAt); err != nil {
		return nil, err
	}
	if err := uc.RecomputeHospitalRating(ctx, review.HospitalID); err != nil {
		return nil, err
	}
	return dto.NewReviewResponse(review), nil
}

// DeleteReview elimina la reseña y recalcula el rating del hospital.
func (uc *ReviewUseCase) DeleteReview(ctx context.Context, reviewID string) error {
	review, err := uc.load(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := uc.reviews.Delete(ctx, review.ID); err != nil {
		return err
	}
	return uc.RecomputeHospitalRating(ctx, review.HospitalID)
}

// RecomputeHospitalRating recalcula averageRating desde las reseñas aprobadas.
// Se serializa por hospital para que dos escrituras concurrentes no dejen un valor viejo.
func (uc *ReviewUseCase) RecomputeHospitalRating(ctx context.Context, hospitalID string) error {
	unlock, err := uc.locker.Lock(ctx, hospitalID)
	if err != nil {
		return fmt.Errorf("lock hospital %s: %w", hospitalID, err)
	}
	defer unlock()

	ratings, err := uc.reviews.ApprovedRatings(ctx, hospitalID)
	if err != nil {
		return err
	}
	return uc.hospitals.UpdateAverageRating(ctx, hospitalID, entity.AverageRating(ratings))
}

// RecomputeHospitalRatings recalcula varios hospitales; se detiene en el primer error.
func (uc *ReviewUseCase) RecomputeHospitalRatings(ctx context.Context, hospitalIDs []string) error {
	for _, id := range hospitalIDs {
		if err := uc.RecomputeHospitalRating(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (uc *ReviewUseCase) load(ctx context.Context, reviewID string) (*entity.Review, error) {
	review, err := uc.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, domain.NotFound(msgReviewNotFound)
	}
	return review, nil
}
