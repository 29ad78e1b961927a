package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodconnect-api/internal/application/auth"
	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
)

// AuthHandler maneja registro, login y perfil propio.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario con su perfil de rol
// @Description  Crea el usuario y el perfil (patient, donor u hospital) en una sola transacción.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, role y campos del perfil"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	// Fiber reutiliza el buffer del cuerpo; el perfil se decodifica más tarde dentro de la tx.
	body := append([]byte(nil), c.Body()...)
	var in dto.RegisterRequest
	if err := dto.Decode(body, &in); err != nil {
		return respondError(c, err)
	}
	in.Body = body
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := dto.Decode(c.Body(), &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado y su perfil
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.MeResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// UpdateProfile godoc
// @Summary      Actualizar el perfil del rol del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auth/update-profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}
