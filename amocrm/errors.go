package amocrm

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates missing credentials
	ErrInvalidConfig = errors.New("invalid amoCRM configuration")
	// ErrUnsupportedOperation indicates the model has no endpoint for the operation
	ErrUnsupportedOperation = errors.New("operation not supported by model")
)

// UnknownModelError is returned by Client.Model for names missing from the registry
type UnknownModelError struct {
	Name string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("model not exists: %s", e.Name)
}

// IsUnknownModel checks if err is an *UnknownModelError
func IsUnknownModel(err error) bool {
	var modelErr *UnknownModelError
	return errors.As(err, &modelErr)
}
