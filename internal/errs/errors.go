package errs

import (
	"errors"
	"fmt"
)

// ErrCaseNotFound is returned on lookups and updates with an unknown id_caso.
var ErrCaseNotFound = errors.New("case not found")

// ValidationError rejects a create request whose required field is missing
// or empty. Field holds the wire name (id_alarma, nombre_agente, ...).
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
