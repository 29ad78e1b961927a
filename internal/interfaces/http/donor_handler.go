package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DonorHandler maneja búsqueda pública, listado admin y perfil propio del donante.
type DonorHandler struct {
	uc *usecase.DonorUseCase
}

// NewDonorHandler construye el handler.
func NewDonorHandler(uc *usecase.DonorUseCase) *DonorHandler {
	return &DonorHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar donantes disponibles
// @Tags         donors
// @Produce      json
// @Param        city        query  string  false  "substring, sin distinguir mayúsculas"
// @Param        area        query  string  false  "substring"
// @Param        country     query  string  false  "substring"
// @Param        bloodGroup  query  string  false  "grupo exacto (A+, O-, ...)"
// @Param        minAge      query  int     false  "edad mínima inclusiva"
// @Param        maxAge      query  int     false  "edad máxima inclusiva"
// @Success      200  {object}  dto.APIResponse{data=[]dto.DonorResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/donors/search [get]
func (h *DonorHandler) Search(c *fiber.Ctx) error {
	var q dto.DonorSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Invalid query parameters")
	}
	out, err := h.uc.Search(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// List godoc
// @Summary      Listar todos los donantes
// @Tags         donors
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.DonorResponse}
// @Router       /api/donors [get]
func (h *DonorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// GetProfile GET /api/donors/profile
func (h *DonorHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// UpdateProfile PUT /api/donors/profile
func (h *DonorHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateDonorRequest
	if err := dto.Decode(c.Body(), &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// ToggleAvailability PATCH /api/donors/availability
func (h *DonorHandler) ToggleAvailability(c *fiber.Ctx) error {
	out, err := h.uc.ToggleAvailability(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, fmt.Sprintf("Availability updated to %t", out.IsAvailable))
}

// Export godoc
// @Summary      Exportar el roster de donantes
// @Tags         admin
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/admin/donors/export [get]
func (h *DonorHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.ExportRoster(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("donors-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
