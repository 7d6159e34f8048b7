package preferences

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTimeLabel      = errors.New("invalid time label")
	ErrInvalidAdvanceMinutes = errors.New("invalid advance minutes")
	ErrInvalidPayload        = errors.New("invalid payload")
	ErrNotFound              = errors.New("preference not found")
)

// FieldError indica qué aviso (consulta/lembrete) falló la validación.
type FieldError struct {
	Concern Concern
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Concern, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
