// Package excel exporta listados a hojas de cálculo .xlsx.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

var _ ports.DonorExporter = (*DonorExporter)(nil)

// SheetDonors nombre de la hoja del roster de donantes.
const SheetDonors = "Donors"

var donorHeaders = []string{
	"Name", "Email", "Age", "Blood Group", "City", "Area", "Country", "Phone",
	"Available", "Can Travel", "Last Donation", "Health Conditions", "Registered At",
}

var donorColumnWidths = []float64{24, 30, 8, 12, 16, 16, 16, 16, 11, 11, 14, 30, 20}

// DonorExporter implementa ports.DonorExporter con excelize.
type DonorExporter struct{}

// NewDonorExporter construye el exportador.
func NewDonorExporter() *DonorExporter { return &DonorExporter{} }

// ExportDonors escribe una fila por donante, en el orden recibido, bajo una fila de encabezados.
func (e *DonorExporter) ExportDonors(_ context.Context, donors []*entity.Donor, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetDonors)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: borrar hoja por defecto: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#A0141E"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de encabezado: %w", err)
	}

	if err := f.SetSheetRow(SheetDonors, "A1", &donorHeaders); err != nil {
		return nil, fmt.Errorf("excel: encabezados: %w", err)
	}
	last, err := excelize.ColumnNumberToName(len(donorHeaders))
	if err != nil {
		return nil, fmt.Errorf("excel: columna final: %w", err)
	}
	if err := f.SetCellStyle(SheetDonors, "A1", last+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: aplicar estilo: %w", err)
	}
	for i, w := range donorColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("excel: columna %d: %w", i+1, err)
		}
		if err := f.SetColWidth(SheetDonors, col, col, w); err != nil {
			return nil, fmt.Errorf("excel: ancho de columna: %w", err)
		}
	}

	for i, d := range donors {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excel: celda fila %d: %w", i+2, err)
		}
		values := donorRow(d)
		if err := f.SetSheetRow(SheetDonors, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Donor roster",
		Created: generatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("excel: propiedades: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func donorRow(d *entity.Donor) []any {
	lastDonation := ""
	if d.LastDonationDate != nil {
		lastDonation = d.LastDonationDate.UTC().Format("2006-01-02")
	}
	return []any{
		d.Name, d.UserEmail, d.Age, d.BloodGroup, d.City, d.Area, d.Country, d.Phone,
		yesNo(d.IsAvailable), yesNo(d.CanTravel), lastDonation,
		strings.Join(d.HealthConditions, ", "),
		d.CreatedAt.UTC().Format("2006-01-02 15:04"),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
