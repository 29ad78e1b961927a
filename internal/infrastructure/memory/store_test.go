package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/memory"
)

func newUser(id, email, role string, at time.Time) *entity.User {
	return &entity.User{ID: id, Email: email, Role: role, IsActive: true, CreatedAt: at, UpdatedAt: at}
}

func TestStore_RunRollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()

	boom := errors.New("perfil inválido")
	err := store.Run(ctx, func(s ports.Stores) error {
		require.NoError(t, s.Users.Create(ctx, newUser("u1", "a@x.com", entity.RoleDonor, now)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	u, err := store.Stores().Users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, u, "el usuario no debe sobrevivir al rollback")
}

func TestStore_RunCommit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, store.Run(ctx, func(s ports.Stores) error {
		return s.Users.Create(ctx, newUser("u1", "a@x.com", entity.RoleDonor, now))
	}))
	u, err := store.Stores().Users.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, u)
}

func TestUserRepo_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Stores().Users
	now := time.Now()

	require.NoError(t, users.Create(ctx, newUser("u1", "a@x.com", entity.RoleDonor, now)))
	err := users.Create(ctx, newUser("u2", "a@x.com", entity.RolePatient, now))
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRepos_OrdenMasRecientePrimeroConEmpate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore().Stores()
	same := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, s.Patients.Create(ctx, &entity.Patient{ID: id, UserID: "u-" + id, Name: id, CreatedAt: same}))
	}
	ps, err := s.Patients.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "p3", ps[0].ID)
	assert.Equal(t, "p2", ps[1].ID)
}

func TestHospitalRepo_UnidadesYRating(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore().Stores()
	h := &entity.Hospital{ID: "h1", UserID: "u1", Name: "City", AvailableBloodUnits: entity.DefaultBloodUnits(), CreatedAt: time.Now()}
	require.NoError(t, s.Hospitals.Create(ctx, h))

	require.NoError(t, s.Hospitals.UpdateBloodUnit(ctx, "h1", entity.BloodUnit{BloodGroup: "A+", Units: 12, CriticalLevel: 5}))
	require.NoError(t, s.Hospitals.UpdateAverageRating(ctx, "h1", decimal.NewNullDecimal(decimal.NewFromFloat(4.5))))

	got, err := s.Hospitals.GetByID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Unit("A+").Units)
	assert.Equal(t, "4.5", got.AverageRating.Decimal.String())

	n, err := s.Hospitals.CountUnitsAtOrBelow(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	// Mutar la copia devuelta no altera el almacén.
	got.AvailableBloodUnits[0].Units = 99
	again, _ := s.Hospitals.GetByID(ctx, "h1")
	assert.Equal(t, 12, again.Unit("A+").Units)
}

func TestDonorRepo_SearchSoloDisponibles(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore().Stores()
	now := time.Now()
	require.NoError(t, s.Donors.Create(ctx, &entity.Donor{ID: "d1", UserID: "u1", City: "New Delhi", BloodGroup: "O-", Age: 30, IsAvailable: true, CreatedAt: now}))
	require.NoError(t, s.Donors.Create(ctx, &entity.Donor{ID: "d2", UserID: "u2", City: "Delhi", BloodGroup: "O-", Age: 30, IsAvailable: false, CreatedAt: now}))

	ds, err := s.Donors.Search(ctx, repository.DonorFilter{City: "del", BloodGroup: "O-"})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "d1", ds[0].ID)
}

func TestUserRepo_DeleteEnCascada(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore().Stores()
	now := time.Now()
	require.NoError(t, s.Users.Create(ctx, newUser("u1", "h@x.com", entity.RoleHospital, now)))
	require.NoError(t, s.Hospitals.Create(ctx, &entity.Hospital{ID: "h1", UserID: "u1", CreatedAt: now}))
	require.NoError(t, s.Reviews.Create(ctx, &entity.Review{ID: "r1", PatientID: "p1", HospitalID: "h1", Rating: 4, IsApproved: true, CreatedAt: now}))

	require.NoError(t, s.Users.Delete(ctx, "u1"))

	h, err := s.Hospitals.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, h)
	n, err := s.Reviews.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
