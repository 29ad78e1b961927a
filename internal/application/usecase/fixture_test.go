package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/lock"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/memory"
)

type fixture struct {
	store     *memory.Store
	repos     ports.Stores
	patients  *usecase.PatientUseCase
	donors    *usecase.DonorUseCase
	hospitals *usecase.HospitalUseCase
	reviews   *usecase.ReviewUseCase
	users     *usecase.UserUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	s := store.Stores()
	reviews := usecase.NewReviewUseCase(s.Reviews, s.Patients, s.Hospitals, lock.NewLocalLocker())
	return &fixture{
		store:     store,
		repos:     s,
		patients:  usecase.NewPatientUseCase(s.Patients),
		donors:    usecase.NewDonorUseCase(s.Donors, nil),
		hospitals: usecase.NewHospitalUseCase(s.Hospitals, nil),
		reviews:   reviews,
		users:     usecase.NewUserUseCase(s.Users, store, reviews),
	}
}

// seq da a cada registro una fecha distinta y creciente.
var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func (f *fixture) addUser(t *testing.T, role string, at time.Time) *entity.User {
	t.Helper()
	u := &entity.User{ID: uuid.NewString(), Email: uuid.NewString() + "@x.com", Role: role, IsActive: true, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, f.repos.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) addPatient(t *testing.T, name string, at time.Time) (*entity.User, *entity.Patient) {
	t.Helper()
	u := f.addUser(t, entity.RolePatient, at)
	p := &entity.Patient{ID: uuid.NewString(), UserID: u.ID, Name: name, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, f.repos.Patients.Create(context.Background(), p))
	return u, p
}

func (f *fixture) addDonor(t *testing.T, d entity.Donor, at time.Time) *entity.Donor {
	t.Helper()
	u := f.addUser(t, entity.RoleDonor, at)
	d.ID, d.UserID, d.CreatedAt, d.UpdatedAt = uuid.NewString(), u.ID, at, at
	require.NoError(t, f.repos.Donors.Create(context.Background(), &d))
	return &d
}

func (f *fixture) addHospital(t *testing.T, name, city string, at time.Time) (*entity.User, *entity.Hospital) {
	t.Helper()
	u := f.addUser(t, entity.RoleHospital, at)
	h := &entity.Hospital{
		ID: uuid.NewString(), UserID: u.ID, Name: name, Address: name + " Road", City: city,
		Area: "Central", Country: "India", AvailableBloodUnits: entity.DefaultBloodUnits(),
		CreatedAt: at, UpdatedAt: at,
	}
	require.NoError(t, f.repos.Hospitals.Create(context.Background(), h))
	return u, h
}

func intPtr(v int) *int { return &v }
