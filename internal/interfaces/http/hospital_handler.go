package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
)

// HospitalHandler maneja búsqueda pública, listado admin, perfil e inventario del hospital.
type HospitalHandler struct {
	uc *usecase.HospitalUseCase
}

// NewHospitalHandler construye el handler.
func NewHospitalHandler(uc *usecase.HospitalUseCase) *HospitalHandler {
	return &HospitalHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar hospitales
// @Description  Con bloodGroup solo devuelve hospitales con stock (> 0) de ese grupo.
// @Tags         hospitals
// @Produce      json
// @Param        city        query  string  false  "substring, sin distinguir mayúsculas"
// @Param        area        query  string  false  "substring"
// @Param        country     query  string  false  "substring"
// @Param        bloodGroup  query  string  false  "grupo con stock disponible"
// @Success      200  {object}  dto.APIResponse{data=[]dto.HospitalResponse}
// @Router       /api/hospitals/search [get]
func (h *HospitalHandler) Search(c *fiber.Ctx) error {
	var q dto.HospitalSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Invalid query parameters")
	}
	out, err := h.uc.Search(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// List GET /api/hospitals (admin)
func (h *HospitalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// GetProfile GET /api/hospitals/profile
func (h *HospitalHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// UpdateProfile PUT /api/hospitals/profile. Unidades y rating no se editan por aquí.
func (h *HospitalHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateHospitalRequest
	if err := dto.Decode(c.Body(), &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// UpdateBloodUnits godoc
// @Summary      Fijar las unidades de un grupo sanguíneo
// @Tags         hospitals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateBloodUnitsRequest  true  "bloodGroup, units, criticalLevel opcional"
// @Success      200  {object}  dto.APIResponse{data=dto.HospitalResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hospitals/blood-units [patch]
func (h *HospitalHandler) UpdateBloodUnits(c *fiber.Ctx) error {
	var in dto.UpdateBloodUnitsRequest
	if err := dto.Decode(c.Body(), &in); err != nil {
		return respondError(c, err)
	}
	out, msg, err := h.uc.UpdateBloodUnits(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, msg)
}

// CriticalUnits GET /api/hospitals/critical-units
func (h *HospitalHandler) CriticalUnits(c *fiber.Ctx) error {
	out, err := h.uc.CriticalUnits(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// BloodUnitReport godoc
// @Summary      Reporte PDF del inventario de sangre
// @Tags         hospitals
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hospitals/blood-units/report [get]
func (h *HospitalHandler) BloodUnitReport(c *fiber.Ctx) error {
	out, err := h.uc.BloodUnitReport(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("blood-units-%s.pdf", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(out)
}
