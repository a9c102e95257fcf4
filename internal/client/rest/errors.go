package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrEmailNotVerified = errors.New("email not verified")
	ErrUnavailable      = errors.New("remote service unavailable")
)

// CodeEmailNotVerified is the error code the services send when the
// session's email has not been confirmed yet.
const CodeEmailNotVerified = "EMAIL_NOT_VERIFIED"

// APIError is a non-2xx response from a remote service.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %d %s (%s)", e.Service, e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %d %s", e.Service, e.StatusCode, e.Message)
}

// Is lets errors.Is match an APIError against the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrEmailNotVerified:
		return e.Code == CodeEmailNotVerified
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden && e.Code != CodeEmailNotVerified
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// errorBody covers the shapes the referral service and identity provider
// use for failures.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func newAPIError(service string, status int, body []byte) *APIError {
	apiErr := &APIError{Service: service, StatusCode: status}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
		apiErr.Code = strings.ToUpper(eb.Code)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// StatusCode returns the remote HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
