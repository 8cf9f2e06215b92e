package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrExpedienteNotFound = errors.New("Expediente no encontrado")
	ErrIndicioNotFound    = errors.New("Indicio no encontrado")
	ErrUsuarioNotFound    = errors.New("Usuario no encontrado")
	ErrArchivoNotFound    = errors.New("Archivo no encontrado")

	ErrCodigoExists  = errors.New("El código de expediente ya existe")
	ErrUsuarioExists = errors.New("El nombre de usuario ya existe")

	ErrCredencialesInvalidas = errors.New("Credenciales inválidas")

	// Returned when the estado UPDATE touches zero rows after the record
	// was seen by the lookup. Surfaced as an internal error, not a 404.
	ErrEstadoUpdateFailed = errors.New("No se pudo actualizar el estado de la evidencia")
)

// ValidationError signals malformed or missing input. It is always produced
// before any persistence call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given client-facing message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError checks whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
