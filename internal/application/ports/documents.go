package ports

import (
	"context"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// BloodUnitReportGenerator genera el reporte PDF de inventario de sangre de un hospital.
type BloodUnitReportGenerator interface {
	GenerateBloodUnitReport(ctx context.Context, h *entity.Hospital, generatedAt time.Time) ([]byte, error)
}

// DonorExporter genera la planilla de donantes (.xlsx).
type DonorExporter interface {
	ExportDonors(ctx context.Context, donors []*entity.Donor, generatedAt time.Time) ([]byte, error)
}
