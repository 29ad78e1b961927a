package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodconnect-api/pkg/validator"
)

type sample struct {
	Name       string `json:"name" validate:"required"`
	Age        int    `json:"age" validate:"required,min=18,max=65"`
	BloodGroup string `json:"bloodGroup" validate:"required,oneof=A+ A- O+ O-"`
	Comment    string `json:"comment" validate:"max=5"`
}

func TestStruct_Valido(t *testing.T) {
	assert.NoError(t, validator.Struct(sample{Name: "Ana", Age: 30, BloodGroup: "O-"}))
}

func TestStruct_MensajesConNombresJSON(t *testing.T) {
	err := validator.Struct(sample{Age: 10, BloodGroup: "X", Comment: "demasiado"})
	require.Error(t, err)

	var verr *validator.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Name is required")
	assert.Contains(t, verr.Messages, "Age must be at least 18")
	assert.Contains(t, verr.Messages, "Blood group must be one of: A+, A-, O+, O-")
	assert.Contains(t, verr.Messages, "Comment cannot exceed 5 characters")
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Contact number", validator.Humanize("contactNumber"))
	assert.Equal(t, "Name", validator.Humanize("name"))
}
