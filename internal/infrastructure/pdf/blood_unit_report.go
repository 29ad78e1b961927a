// Package pdf genera el reporte imprimible de inventario de sangre de un hospital.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del hospital + ubicación │ Fecha de emisión │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTACTO: Email / Tel / Emergencias / Web                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Grupo | Unidades | Nivel crítico | Estado            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total unidades / Grupos críticos / Rating          │
//	│  FOOTER: QR con el identificador del hospital                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

var _ ports.BloodUnitReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 160, Green: 20, Blue: 30}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 200, Green: 0, Blue: 0}
	colorOK       = &props.Color{Red: 0, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.BloodUnitReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateBloodUnitReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateBloodUnitReport(
	_ context.Context,
	h *entity.Hospital,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Blood unit report", true).
		WithAuthor(h.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(h, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(h))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(unitRows(h.AvailableBloodUnits)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(h))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(h))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(h *entity.Hospital, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(h.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s, %s, %s", h.Area, h.City, h.Country), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("BLOOD UNIT REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func contactRow(h *entity.Hospital) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(h.Address, props.Text{Size: 8, Top: 1}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Emergency: %s   |   Web: %s",
				nonEmpty(h.Email, "-"),
				nonEmpty(h.ContactNumber, "-"),
				nonEmpty(h.EmergencyContact, "-"),
				nonEmpty(h.Website, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	hdr := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		hdr("Blood group", 3),
		hdr("Units", 3),
		hdr("Critical level", 3),
		hdr("Status", 3),
	)
}

// unitRows una fila por grupo, en el orden almacenado.
func unitRows(units []entity.BloodUnit) []core.Row {
	rows := make([]core.Row, 0, len(units))
	for _, u := range units {
		status, color := "OK", colorOK
		if u.IsCritical() {
			status, color = "CRITICAL", colorCritical
		}
		cell := func(s string) core.Col {
			return col.New(3).Add(text.New(s, props.Text{Size: 9, Align: align.Center, Top: 1}))
		}
		rows = append(rows, row.New(7).Add(
			cell(u.BloodGroup),
			cell(fmt.Sprint(u.Units)),
			cell(fmt.Sprint(u.CriticalLevel)),
			col.New(3).Add(text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1, Color: color,
			})),
		))
	}
	return rows
}

func summaryRow(h *entity.Hospital) core.Row {
	total := 0
	for _, u := range h.AvailableBloodUnits {
		total += u.Units
	}
	rating := "No ratings yet"
	if h.AverageRating.Valid {
		rating = h.AverageRating.Decimal.StringFixed(2) + " / 5"
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Total units:"),
			label("Critical groups:"),
			label("Average rating:"),
		),
		col.New(3).Add(
			value(fmt.Sprint(total)),
			value(fmt.Sprint(len(h.CriticalUnits()))),
			value(rating),
		),
	)
}

func footerRow(h *entity.Hospital) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(h.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Hospital ID: "+h.ID, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Units at or below their critical level need replenishment.", props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
