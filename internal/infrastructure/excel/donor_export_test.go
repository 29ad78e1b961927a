package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/excel"
)

func TestExportDonors_EncabezadosYFilas(t *testing.T) {
	last := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	donors := []*entity.Donor{
		{Name: "Ana", UserEmail: "ana@x.com", Age: 30, BloodGroup: "O-", City: "Dhaka", Area: "Mirpur", Country: "BD",
			Phone: "1", IsAvailable: true, LastDonationDate: &last, HealthConditions: []string{"asthma", "none"},
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{Name: "Bo", UserEmail: "bo@x.com", Age: 40, BloodGroup: "AB+", City: "Chittagong", Area: "Agrabad", Country: "BD",
			Phone: "2", CanTravel: true, CreatedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
	}

	out, err := excel.NewDonorExporter().ExportDonors(context.Background(), donors, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excel.SheetDonors}, f.GetSheetList())
	rows, err := f.GetRows(excel.SheetDonors)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Health Conditions", rows[0][11])
	assert.Equal(t, []string{"Ana", "ana@x.com", "30", "O-", "Dhaka", "Mirpur", "BD", "1", "Yes", "No", "2024-03-01", "asthma, none", "2024-01-01 10:00"}, rows[1])
	assert.Equal(t, "AB+", rows[2][3])
	assert.Equal(t, "Yes", rows[2][9])
	assert.Equal(t, "", rows[2][10])
}

func TestExportDonors_SinDonantesSoloEncabezado(t *testing.T) {
	out, err := excel.NewDonorExporter().ExportDonors(context.Background(), nil, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(excel.SheetDonors)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
