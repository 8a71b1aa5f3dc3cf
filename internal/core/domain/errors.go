package domain

import (
	"errors"
	"strings"
)

// Error kinds. Every error returned across a service boundary wraps exactly
// one of these, so callers branch with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// FieldError describes a single rejected field of a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified failure whose Message is safe to show to clients.
type Error struct {
	Kind    error
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewValidationError(message string, fields ...FieldError) error {
	return &Error{Kind: ErrValidation, Message: message, Fields: fields}
}

func NewUnauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func NewForbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func NewNotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func NewConflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// AsError extracts the classified error from err's chain, if any.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Client-facing messages shared between layers.
const (
	MsgInvalidJSON        = "Invalid JSON format"
	MsgInvalidCredentials = "Invalid username or password."
	MsgExistingUsername   = "Existing username."
	MsgUnknownUsername    = "Inexistent username"
	MsgInvalidPassword    = "Invalid password."
	MsgNoToken            = "No token."
	MsgBadAuthHeader      = "Invalid authentication header format."
	MsgBadToken           = "Failed to verify JWT."
	MsgUserGone           = "user no longer exists"
	MsgForbidden          = "Forbidden permission"
	MsgInvalidPermission  = "Invalid permission input."
	MsgProductNotFound    = "product not found"
	MsgInvalidProduct     = "Invalid product input."
	MsgNoUpdatableFields  = "no updatable fields"
	MsgInvalidInputValue  = "invalid input value"
	MsgIdempotencyReused  = "Idempotency-Key already used with a different payload."
)
