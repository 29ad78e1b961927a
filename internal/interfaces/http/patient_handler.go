package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
)

// PatientHandler maneja el listado admin y el perfil propio del paciente.
type PatientHandler struct {
	uc *usecase.PatientUseCase
}

// NewPatientHandler construye el handler.
func NewPatientHandler(uc *usecase.PatientUseCase) *PatientHandler {
	return &PatientHandler{uc: uc}
}

// List GET /api/patients (admin)
func (h *PatientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// GetProfile GET /api/patients/profile
func (h *PatientHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// UpdateProfile PUT /api/patients/profile
func (h *PatientHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdatePatientRequest
	if err := dto.Decode(c.Body(), &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}
