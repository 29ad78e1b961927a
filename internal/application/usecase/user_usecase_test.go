package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

func TestUserToggleStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.addUser(t, entity.RoleDonor, base)

	out, err := f.users.ToggleStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	out, err = f.users.ToggleStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, out.IsActive)

	_, err = f.users.ToggleStatus(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "User not found", err.Error())
}

func TestUserDelete_PacienteRecalculaRatings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, h := f.addHospital(t, "City Care", "Delhi", base)
	u1, _ := f.addPatient(t, "Ana", base)
	u2, _ := f.addPatient(t, "Luis", base)

	_, err := f.reviews.CreateReview(ctx, u1.ID, dto.CreateReviewRequest{HospitalID: h.ID, Rating: intPtr(1), Comment: "Mal"})
	require.NoError(t, err)
	_, err = f.reviews.CreateReview(ctx, u2.ID, dto.CreateReviewRequest{HospitalID: h.ID, Rating: intPtr(5), Comment: "Bien"})
	require.NoError(t, err)
	avg, _ := f.rating(t, h.ID)
	assert.Equal(t, "3", avg)

	require.NoError(t, f.users.Delete(ctx, u1.ID))

	gone, err := f.repos.Users.GetByID(ctx, u1.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	p, err := f.repos.Patients.GetByUserID(ctx, u1.ID)
	require.NoError(t, err)
	assert.Nil(t, p)

	avg, _ = f.rating(t, h.ID)
	assert.Equal(t, "5", avg)
}

func TestUserDelete_HospitalYNoEncontrado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hu, h := f.addHospital(t, "City Care", "Delhi", base)

	require.NoError(t, f.users.Delete(ctx, hu.ID))
	got, err := f.repos.Hospitals.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = f.users.Delete(ctx, hu.ID)
	assert.Equal(t, "User not found", err.Error())

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

type failingRatings struct{}

func (failingRatings) RecomputeHospitalRatings(context.Context, []string) error {
	return errors.New("lock no disponible")
}

func TestUserDelete_FalloAlRecalcularNoRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, h := f.addHospital(t, "City Care", "Delhi", base)
	u, _ := f.addPatient(t, "Ana", base)
	_, err := f.reviews.CreateReview(ctx, u.ID, dto.CreateReviewRequest{HospitalID: h.ID, Rating: intPtr(4), Comment: "Ok"})
	require.NoError(t, err)

	users := usecase.NewUserUseCase(f.repos.Users, f.store, failingRatings{})
	require.NoError(t, users.Delete(ctx, u.ID))

	gone, err := f.repos.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
