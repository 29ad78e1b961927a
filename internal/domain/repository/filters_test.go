package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
)

func intPtr(v int) *int { return &v }

func TestDonorFilter_Matches(t *testing.T) {
	d := &entity.Donor{City: "Delhi", Area: "Karol Bagh", Country: "India", BloodGroup: "O-", Age: 30, IsAvailable: true}

	assert.True(t, repository.DonorFilter{}.Matches(d))
	assert.True(t, repository.DonorFilter{City: "del"}.Matches(d))
	assert.True(t, repository.DonorFilter{BloodGroup: "O-", MinAge: intPtr(30), MaxAge: intPtr(30)}.Matches(d), "rango inclusivo")
	assert.False(t, repository.DonorFilter{BloodGroup: "O+"}.Matches(d))
	assert.False(t, repository.DonorFilter{MinAge: intPtr(31)}.Matches(d))
	assert.False(t, repository.DonorFilter{MaxAge: intPtr(29)}.Matches(d))
	assert.False(t, repository.DonorFilter{City: "del", Country: "nepal"}.Matches(d), "AND lógico")

	d.IsAvailable = false
	assert.False(t, repository.DonorFilter{}.Matches(d), "solo donantes disponibles")
}

func TestHospitalFilter_Matches(t *testing.T) {
	h := &entity.Hospital{City: "Mumbai", Area: "Andheri", Country: "India"}
	assert.True(t, repository.HospitalFilter{City: "MUM", Area: "and"}.Matches(h))
	assert.False(t, repository.HospitalFilter{Country: "peru"}.Matches(h))
}
