package petstore

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter is matched by every *RequiredParameterError.
	ErrMissingParameter = errors.New("missing required parameter")
	ErrUnknownOperation = errors.New("unknown operation")
)

// RequiredParameterError is returned before any request is sent when a
// required parameter is absent.
type RequiredParameterError struct {
	Operation string
	Parameter string
}

func (e *RequiredParameterError) Error() string {
	return fmt.Sprintf("required parameter %s was missing when calling %s", e.Parameter, e.Operation)
}

func (e *RequiredParameterError) Unwrap() error { return ErrMissingParameter }
