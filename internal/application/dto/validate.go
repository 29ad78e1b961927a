package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/pkg/validator"
)

// Validate valida s por sus tags y traduce el resultado a domain.ErrValidation.
func Validate(s any) error {
	err := validator.Struct(s)
	if err == nil {
		return nil
	}
	var verr *validator.Error
	if errors.As(err, &verr) {
		return domain.Validation(verr.Error())
	}
	return fmt.Errorf("validate: %w", err)
}

// Decode decodifica un cuerpo JSON en v. Un cuerpo vacío deja v sin cambios.
func Decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.Validation(validator.Humanize(typeErr.Field) + " has an invalid type")
		}
		return domain.Validation("Invalid request body")
	}
	return nil
}
