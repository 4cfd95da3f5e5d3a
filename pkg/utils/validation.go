package utils

import "fmt"

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RequireAll returns a ValidationError naming the first empty field, or nil.
// fields alternates name and value. message is reported as the error text.
func RequireAll(message string, fields ...string) error {
	if len(fields)%2 != 0 {
		panic(fmt.Sprintf("RequireAll: odd number of field arguments (%d)", len(fields)))
	}
	for i := 0; i < len(fields); i += 2 {
		if fields[i+1] == "" {
			return &ValidationError{Field: fields[i], Message: message}
		}
	}
	return nil
}
