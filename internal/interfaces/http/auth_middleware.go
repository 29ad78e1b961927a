package http

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

const (
	msgLoginRequired   = "Please login to access this resource"
	msgInvalidToken    = "Invalid or expired token"
	msgInactiveAccount = "User not found or account is inactive"
	msgRoleNotAllowed  = "User role '%s' is not authorized to access this route"
)

// UserLookup es lo mínimo que necesita el middleware para resolver el usuario del token.
// Lo implementa repository.UserRepository.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga el usuario vigente desde la base de datos.
// El rol en Locals es el del usuario almacenado, no el del token.
func AuthMiddleware(jwtSecret string, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", msgLoginRequired)
		}
		userID, _, err := jwt.Parse(jwtSecret, strings.TrimSpace(tokenString))
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", msgInvalidToken)
		}
		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		if user == nil || !user.IsActive {
			return fail(c, fiber.StatusUnauthorized, "INACTIVE_USER", msgInactiveAccount)
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole restringe la ruta a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if !slices.Contains(roles, role) {
			return fail(c, fiber.StatusForbidden, CodeForbidden, fmt.Sprintf(msgRoleNotAllowed, role))
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
