// Package validate construye el validador compartido de DTOs.
// Una sola instancia por proceso: el validador cachea metadatos de structs.
package validate

import validator "github.com/go-playground/validator/v10"

// New crea el validador con la semántica estricta de campos required en structs.
func New() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
