package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"travana-referral-dashboard/internal/client/rest"
	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
	"travana-referral-dashboard/internal/repository"
	"travana-referral-dashboard/internal/security"
	"travana-referral-dashboard/internal/service"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Action   string `json:"action,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("", "Request body is required")
		}
		return domain.NewValidationError("", "Request body is not valid JSON")
	}
	return nil
}

// errorStatus classifies err. fallback is the user-facing message for
// failures whose own text should not reach the browser.
func errorStatus(err error, fallback string) (int, ErrorResponse) {
	var ve *domain.ValidationError
	var apiErr *rest.APIError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrorResponse{Error: ve.Message, Field: ve.Field}
	case errors.Is(err, domain.ErrNoSession),
		errors.Is(err, rest.ErrUnauthorized),
		errors.Is(err, security.ErrMissingToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		return http.StatusUnauthorized, ErrorResponse{Error: "Your session has expired, please sign in again", Redirect: "/auth"}
	case errors.Is(err, rest.ErrEmailNotVerified):
		return http.StatusForbidden, ErrorResponse{
			Error:  "Please verify your email address",
			Code:   rest.CodeEmailNotVerified,
			Action: "resend_verification",
		}
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, rest.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Error: "You do not have access to this resource"}
	case errors.Is(err, domain.ErrInvitationEmailMismatch):
		return http.StatusConflict, ErrorResponse{Error: "This invitation was sent to a different account", Action: "sign_out"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrorResponse{Error: "Status change not allowed"}
	case errors.Is(err, domain.ErrNoOrganization):
		return http.StatusNotFound, ErrorResponse{Error: "You are not a member of an organization"}
	case errors.Is(err, rest.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "Not found"}
	case errors.Is(err, service.ErrEmailDisabled):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "Email sharing is not available"}
	case errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
		// Remaining remote rejections keep their status.
		return apiErr.StatusCode, ErrorResponse{Error: fallback}
	case errors.Is(err, rest.ErrUnavailable):
		return http.StatusBadGateway, ErrorResponse{Error: fallback}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: fallback}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, body := errorStatus(err, fallback)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "status", status, "remote_status", rest.StatusCode(err), "error", err)
	} else {
		logger.DebugContext(r.Context(), "Request rejected", "path", r.URL.Path, "status", status, "remote_status", rest.StatusCode(err), "error", err)
	}
	writeJSON(w, status, body)
}
