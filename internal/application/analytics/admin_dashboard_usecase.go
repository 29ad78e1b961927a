// Package analytics contiene los casos de uso de agregación para el panel de administración:
// estadísticas globales y el feed de actividad reciente.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

const (
	criticalUnitsThreshold = 5  // umbral fijo del dashboard; no usa criticalLevel
	activityPerKind        = 10 // registros recientes por tipo
	activityMax            = 50 // tamaño máximo del feed
)

// AdminDashboardUseCase agrega conteos y actividad sobre todos los repositorios (solo lectura).
type AdminDashboardUseCase struct {
	patients  repository.PatientRepository
	donors    repository.DonorRepository
	hospitals repository.HospitalRepository
	reviews   repository.ReviewRepository
}

// NewAdminDashboardUseCase construye el caso de uso.
func NewAdminDashboardUseCase(
	patients repository.PatientRepository,
	donors repository.DonorRepository,
	hospitals repository.HospitalRepository,
	reviews repository.ReviewRepository,
) *AdminDashboardUseCase {
	return &AdminDashboardUseCase{patients: patients, donors: donors, hospitals: hospitals, reviews: reviews}
}

// GetStats ejecuta los seis conteos en paralelo.
func (uc *AdminDashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	type countResult struct {
		name  string
		value int
		err   error
	}
	queries := []struct {
		name string
		run  func(context.Context) (int, error)
	}{
		{"totalPatients", uc.patients.Count},
		{"totalDonors", uc.donors.Count},
		{"totalHospitals", uc.hospitals.Count},
		{"totalReviews", uc.reviews.Count},
		{"activeDonors", uc.donors.CountAvailable},
		{"criticalBloodUnits", func(ctx context.Context) (int, error) {
			return uc.hospitals.CountUnitsAtOrBelow(ctx, criticalUnitsThreshold)
		}},
	}

	ch := make(chan countResult, len(queries))
	for _, q := range queries {
		q := q
		go func() {
			v, err := q.run(ctx)
			ch <- countResult{name: q.name, value: v, err: err}
		}()
	}

	counts := make(map[string]int, len(queries))
	var firstErr error
	for range queries {
		r := <-ch
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("dashboard: %s: %w", r.name, r.err)
		}
		counts[r.name] = r.value
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return &dto.DashboardStatsDTO{
		TotalPatients:      counts["totalPatients"],
		TotalDonors:        counts["totalDonors"],
		TotalHospitals:     counts["totalHospitals"],
		TotalReviews:       counts["totalReviews"],
		ActiveDonors:       counts["activeDonors"],
		CriticalBloodUnits: counts["criticalBloodUnits"],
	}, nil
}

// GetActivityLogs sintetiza el feed: los 10 más recientes de cada tipo, ordenados
// por fecha descendente y truncados a 50.
func (uc *AdminDashboardUseCase) GetActivityLogs(ctx context.Context) ([]dto.ActivityDTO, error) {
	patients, err := uc.patients.Recent(ctx, activityPerKind)
	if err != nil {
		return nil, fmt.Errorf("activity: patients: %w", err)
	}
	donors, err := uc.donors.Recent(ctx, activityPerKind)
	if err != nil {
		return nil, fmt.Errorf("activity: donors: %w", err)
	}
	hospitals, err := uc.hospitals.Recent(ctx, activityPerKind)
	if err != nil {
		return nil, fmt.Errorf("activity: hospitals: %w", err)
	}
	reviews, err := uc.reviews.Recent(ctx, activityPerKind)
	if err != nil {
		return nil, fmt.Errorf("activity: reviews: %w", err)
	}

	feed := make([]dto.ActivityDTO, 0, len(patients)+len(donors)+len(hospitals)+len(reviews))
	for _, p := range patients {
		feed = append(feed, dto.ActivityDTO{Type: dto.ActivityPatientRegister, Message: "New patient registered: " + p.Name, Timestamp: p.CreatedAt})
	}
	for _, d := range donors {
		feed = append(feed, dto.ActivityDTO{Type: dto.ActivityDonorRegister, Message: "New donor registered: " + d.Name, Timestamp: d.CreatedAt})
	}
	for _, h := range hospitals {
		feed = append(feed, dto.ActivityDTO{Type: dto.ActivityHospitalRegister, Message: "New hospital registered: " + h.Name, Timestamp: h.CreatedAt})
	}
	for _, r := range reviews {
		feed = append(feed, dto.ActivityDTO{Type: dto.ActivityReviewSubmitted, Message: "New review submitted for " + r.HospitalName, Timestamp: r.CreatedAt})
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Timestamp.After(feed[j].Timestamp) })
	if len(feed) > activityMax {
		feed = feed[:activityMax]
	}
	return feed, nil
}
