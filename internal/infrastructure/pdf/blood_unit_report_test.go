package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/pdf"
)

func TestGenerateBloodUnitReport_DevuelvePDF(t *testing.T) {
	units := entity.DefaultBloodUnits()
	units[0].Units = 12
	h := &entity.Hospital{
		ID:                  "7f8c2a4e-1111-4a3b-9c1d-000000000001",
		Name:                "City General",
		Email:               "info@citygeneral.org",
		Address:             "1 Main St",
		City:                "Dhaka",
		Area:                "Dhanmondi",
		Country:             "Bangladesh",
		ContactNumber:       "555-0100",
		AvailableBloodUnits: units,
		AverageRating:       decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
	}

	out, err := pdf.NewMarotoReportGenerator().GenerateBloodUnitReport(context.Background(), h, time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
