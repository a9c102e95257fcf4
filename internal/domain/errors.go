package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition       = errors.New("status transition not allowed")
	ErrInvitationEmailMismatch = errors.New("invitation was sent to a different email address")
	ErrNoOrganization          = errors.New("user does not belong to an organization")
	ErrNoSession               = errors.New("no session in context")
	ErrForbidden               = errors.New("not allowed to act for this referrer")
)

// ValidationError is raised before any network dispatch and is safe to show
// to the user as-is.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
