package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"travana-referral-dashboard/internal/client/rest"
	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/repository"
	"travana-referral-dashboard/internal/security"
	"travana-referral-dashboard/internal/service"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   ErrorResponse
	}{
		{"validation", domain.NewValidationError("referredEmail", "Please enter a valid email address"), http.StatusBadRequest, ErrorResponse{Error: "Please enter a valid email address", Field: "referredEmail"}},
		{"no session", domain.ErrNoSession, http.StatusUnauthorized, ErrorResponse{Error: "Your session has expired, please sign in again", Redirect: "/auth"}},
		{"expired token", fmt.Errorf("verify: %w", security.ErrExpiredToken), http.StatusUnauthorized, ErrorResponse{Error: "Your session has expired, please sign in again", Redirect: "/auth"}},
		{"remote 401", &rest.APIError{StatusCode: 401}, http.StatusUnauthorized, ErrorResponse{Error: "Your session has expired, please sign in again", Redirect: "/auth"}},
		{"email not verified", &rest.APIError{StatusCode: 403, Code: rest.CodeEmailNotVerified}, http.StatusForbidden, ErrorResponse{Error: "Please verify your email address", Code: rest.CodeEmailNotVerified, Action: "resend_verification"}},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, ErrorResponse{Error: "You do not have access to this resource"}},
		{"remote forbidden", &rest.APIError{StatusCode: 403}, http.StatusForbidden, ErrorResponse{Error: "You do not have access to this resource"}},
		{"invitation mismatch", domain.ErrInvitationEmailMismatch, http.StatusConflict, ErrorResponse{Error: "This invitation was sent to a different account", Action: "sign_out"}},
		{"invalid transition", fmt.Errorf("booked to lost: %w", domain.ErrInvalidTransition), http.StatusConflict, ErrorResponse{Error: "Status change not allowed"}},
		{"no organization", domain.ErrNoOrganization, http.StatusNotFound, ErrorResponse{Error: "You are not a member of an organization"}},
		{"remote not found", &rest.APIError{StatusCode: 404}, http.StatusNotFound, ErrorResponse{Error: "Not found"}},
		{"row not found", repository.ErrNotFound, http.StatusNotFound, ErrorResponse{Error: "Not found"}},
		{"email disabled", service.ErrEmailDisabled, http.StatusServiceUnavailable, ErrorResponse{Error: "Email sharing is not available"}},
		{"remote conflict", &rest.APIError{StatusCode: 409, Message: "internal detail"}, http.StatusConflict, ErrorResponse{Error: "fallback"}},
		{"remote 5xx", &rest.APIError{StatusCode: 503}, http.StatusBadGateway, ErrorResponse{Error: "fallback"}},
		{"transport", fmt.Errorf("dial: %w", rest.ErrUnavailable), http.StatusBadGateway, ErrorResponse{Error: "fallback"}},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ErrorResponse{Error: "fallback"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := errorStatus(tt.err, "fallback")
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.body, body)
		})
	}
}
