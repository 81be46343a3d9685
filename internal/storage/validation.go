package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrInvalidDocument = errors.New("invalid document")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDocument ensures the document body is well-formed JSON. The store
// is otherwise opaque about its contents.
func validateDocument(doc []byte) error {
	if len(doc) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidDocument)
	}
	if !json.Valid(doc) {
		return fmt.Errorf("%w: body is not valid JSON", ErrInvalidDocument)
	}
	return nil
}
