package billing

import (
	"fmt"
	"strings"
)

// ValidationError blocks a client submission before anything reaches the
// backend. MissingFields carries every blank required field at once, so the
// user fixes the form in one round instead of field by field. Length
// violations come one at a time, first offender wins.
type ValidationError struct {
	MissingFields []string
	Message       string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("Los siguientes campos son obligatorios: %s",
			strings.Join(e.MissingFields, ", "))
	}
	return e.Message
}

func missingFieldsError(fields []string) *ValidationError {
	return &ValidationError{MissingFields: fields}
}

func lengthError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
