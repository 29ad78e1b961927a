package dto_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

func TestDecode_TipoInvalido(t *testing.T) {
	var req dto.DonorRequest
	err := dto.Decode([]byte(`{"age":"treinta"}`), &req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Age has an invalid type", err.Error())
}

func TestDecode_CuerpoVacio(t *testing.T) {
	var req dto.PatientRequest
	require.NoError(t, dto.Decode(nil, &req))
	assert.Empty(t, req.Name)
}

func TestDate_AceptaFechaCorta(t *testing.T) {
	var req dto.DonorRequest
	require.NoError(t, dto.Decode([]byte(`{"lastDonationDate":"2024-01-15"}`), &req))
	require.NotNil(t, req.LastDonationDate)
	assert.Equal(t, 2024, req.LastDonationDate.Year())

	require.NoError(t, dto.Decode([]byte(`{"lastDonationDate":"2024-01-15T10:00:00Z"}`), &req))
	assert.Equal(t, 10, req.LastDonationDate.Hour())

	assert.Error(t, dto.Decode([]byte(`{"lastDonationDate":"ayer"}`), &req))
}

func TestDonorRequest_EdadFueraDeRango(t *testing.T) {
	req := dto.DonorRequest{
		Name: "Ravi", Age: 10, BloodGroup: "O-", City: "Delhi",
		Area: "Rohini", Country: "India", Phone: "123",
	}
	req.Normalize()
	err := dto.Validate(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "Age must be at least 18")
	require.NotNil(t, req.IsAvailable)
	assert.True(t, *req.IsAvailable, "isAvailable por defecto true")
}

func TestUpdatePatientRequest_MergeInto(t *testing.T) {
	age := 40
	p := &entity.Patient{Name: "Ana", City: "Pune"}
	req := dto.PatientRequestFrom(p)
	name := "  Ana María "
	dto.UpdatePatientRequest{Name: &name, Age: &age}.MergeInto(&req)
	req.Normalize()
	require.NoError(t, dto.Validate(req))

	req.Apply(p)
	assert.Equal(t, "Ana María", p.Name)
	assert.Equal(t, "Pune", p.City, "campos ausentes se conservan")
	require.NotNil(t, p.Age)
	assert.Equal(t, 40, *p.Age)
}

func TestHospitalRequest_NormalizaEmail(t *testing.T) {
	req := dto.HospitalRequest{
		Name: "City Care", Email: "  INFO@CityCare.org ", Address: "1 Main St",
		City: "Delhi", Area: "Saket", Country: "India", ContactNumber: "555",
	}
	req.Normalize()
	require.NoError(t, dto.Validate(req))
	assert.Equal(t, "info@citycare.org", req.Email)
}

func TestCreateReviewRequest_ComentarioLargo(t *testing.T) {
	rating := 6
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	req := dto.CreateReviewRequest{HospitalID: "h1", Rating: &rating, Comment: string(long)}
	err := dto.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rating must be at most 5")
	assert.Contains(t, err.Error(), "Comment cannot exceed 500 characters")
}
