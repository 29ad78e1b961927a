package domain

import "errors"

// Tipos de error de dominio (sin dependencias externas). Cada uno se traduce a un status HTTP.
var (
	ErrValidation   = errors.New("entrada inválida")             // 400
	ErrConflict     = errors.New("conflicto con el estado actual") // 400 (duplicados)
	ErrUnauthorized = errors.New("no autorizado")                 // 401
	ErrForbidden    = errors.New("acceso denegado")               // 403
	ErrNotFound     = errors.New("recurso no encontrado")         // 404
)

// Error es un error de dominio con mensaje legible para el cliente.
// errors.Is(err, domain.ErrNotFound) funciona vía Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError construye un error de dominio del tipo indicado.
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Atajos por tipo.
func Validation(message string) error   { return NewError(ErrValidation, message) }
func Conflict(message string) error     { return NewError(ErrConflict, message) }
func Unauthorized(message string) error { return NewError(ErrUnauthorized, message) }
func Forbidden(message string) error    { return NewError(ErrForbidden, message) }
func NotFound(message string) error     { return NewError(ErrNotFound, message) }
