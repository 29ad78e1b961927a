package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
)

// Códigos de error expuestos en ErrorResponse.Code.
const (
	CodeValidation   = "VALIDATION"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL"
)

// ok responde con el sobre {success:true, data?, message?}.
func ok(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(dto.APIResponse{Success: true, Data: data, Message: message})
}

// okList responde con {success:true, count, data}. data nunca es null.
func okList[T any](c *fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return c.JSON(dto.APIResponse{Success: true, Count: &n, Data: items})
}

// fail responde con el status y código de la categoría del error.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Code: code, Message: message})
}

// respondError traduce un error de aplicación a su respuesta HTTP.
// Los errores de dominio muestran su mensaje; el resto es 500 con el mensaje del error.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return fail(c, status, code, messageOf(err))
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusBadRequest, CodeConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	default:
		return fiber.StatusInternalServerError, CodeInternal
	}
}

func messageOf(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// ErrorHandler maneja los errores que escapan de los handlers (404 de Fiber, panics recuperados, etc.).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fail(c, fe.Code, CodeNotFound, msgRouteNotFound)
		case fiber.StatusInternalServerError:
			return respondError(c, err)
		default:
			return fail(c, fe.Code, "", fe.Message)
		}
	}
	return respondError(c, err)
}
