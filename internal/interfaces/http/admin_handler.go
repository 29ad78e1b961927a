package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/bloodconnect-api/internal/application/analytics"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
)

// AdminHandler maneja el dashboard y la administración de usuarios.
type AdminHandler struct {
	dashboard *appanalytics.AdminDashboardUseCase
	users     *usecase.UserUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(dashboard *appanalytics.AdminDashboardUseCase, users *usecase.UserUseCase) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, users: users}
}

// Dashboard godoc
// @Summary      Estadísticas globales
// @Description  criticalBloodUnits cuenta pares (hospital, grupo) con units <= 5.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.DashboardStatsDTO}
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// ActivityLogs godoc
// @Summary      Actividad reciente (máximo 50 eventos)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ActivityDTO}
// @Router       /api/admin/activity-logs [get]
func (h *AdminHandler) ActivityLogs(c *fiber.Ctx) error {
	out, err := h.dashboard.GetActivityLogs(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// Users GET /api/admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// ToggleUserStatus PATCH /api/admin/users/:userId/status
func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	out, err := h.users.ToggleStatus(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	msg := "User deactivated"
	if out.IsActive {
		msg = "User activated"
	}
	return ok(c, fiber.StatusOK, out, msg)
}

// DeleteUser DELETE /api/admin/users/:userId. Borra también el perfil del rol.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, nil, "User deleted successfully")
}
