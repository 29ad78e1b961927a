package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

func TestDonorSearch_GrupoCiudadYEdad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addDonor(t, entity.Donor{Name: "A", Age: 25, BloodGroup: "O-", City: "New Delhi", Area: "Rohini", Country: "India", IsAvailable: true}, base)
	f.addDonor(t, entity.Donor{Name: "B", Age: 40, BloodGroup: "O-", City: "DELHI", Area: "Saket", Country: "India", IsAvailable: true}, base.Add(time.Minute))
	f.addDonor(t, entity.Donor{Name: "C", Age: 40, BloodGroup: "O+", City: "Delhi", Area: "Saket", Country: "India", IsAvailable: true}, base)
	f.addDonor(t, entity.Donor{Name: "D", Age: 40, BloodGroup: "O-", City: "Delhi", Area: "Saket", Country: "India", IsAvailable: false}, base)
	f.addDonor(t, entity.Donor{Name: "E", Age: 40, BloodGroup: "O-", City: "Mumbai", Area: "Andheri", Country: "India", IsAvailable: true}, base)

	got, err := f.donors.Search(ctx, dto.DonorSearchQuery{BloodGroup: "O-", City: "del"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name, "más reciente primero")
	assert.Equal(t, "A", got[1].Name)

	got, err = f.donors.Search(ctx, dto.DonorSearchQuery{BloodGroup: "O-", City: "del", MinAge: "26", MaxAge: "40"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)

	_, err = f.donors.Search(ctx, dto.DonorSearchQuery{MinAge: "veinte"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "minAge must be a number", err.Error())
}

func TestDonorSearch_MasDecodificadoComoEspacio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addDonor(t, entity.Donor{Name: "A", Age: 25, BloodGroup: "AB+", City: "Delhi", IsAvailable: true}, base)

	got, err := f.donors.Search(ctx, dto.DonorSearchQuery{BloodGroup: "AB "})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHospitalSearch_FiltraStockPositivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hu1, _ := f.addHospital(t, "Con stock", "Delhi", base)
	_, _ = f.addHospital(t, "Sin stock", "Delhi", base.Add(time.Minute))

	_, _, err := f.hospitals.UpdateBloodUnits(ctx, hu1.ID, dto.UpdateBloodUnitsRequest{BloodGroup: "A+", Units: intPtr(3)})
	require.NoError(t, err)

	all, err := f.hospitals.Search(ctx, dto.HospitalSearchQuery{City: "delhi"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Sin stock", all[0].Name)

	got, err := f.hospitals.Search(ctx, dto.HospitalSearchQuery{City: "delhi", BloodGroup: "A+"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Con stock", got[0].Name)
}
