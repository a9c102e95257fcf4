package http

import (
	"net/http"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/service"
)

type AuthHandler struct {
	accountSvc service.AccountService
}

func NewAuthHandler(accountSvc service.AccountService) *AuthHandler {
	return &AuthHandler{accountSvc: accountSvc}
}

type sessionResponse struct {
	Token   string          `json:"token,omitempty"`
	Session *domain.Session `json:"session"`
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var in domain.SignInInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, "Sign in failed")
		return
	}
	sess, err := h.accountSvc.SignIn(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Sign in failed")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: sess.Token, Session: sess})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Sign out failed")
		return
	}
	if err := h.accountSvc.SignOut(r.Context(), sess); err != nil {
		writeError(w, r, err, "Sign out failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/auth"})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load session")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: sess})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to change password")
		return
	}
	var in domain.ChangePasswordInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, "Failed to change password")
		return
	}
	if err := h.accountSvc.ChangePassword(r.Context(), sess, in); err != nil {
		writeError(w, r, err, "Failed to change password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to update profile")
		return
	}
	var in domain.UpdateProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, "Failed to update profile")
		return
	}
	if err := h.accountSvc.UpdateProfile(r.Context(), sess, in); err != nil {
		writeError(w, r, err, "Failed to update profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "Email verification failed")
		return
	}
	if err := h.accountSvc.VerifyEmail(r.Context(), req.Token); err != nil {
		writeError(w, r, err, "Email verification failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/dashboard"})
}

type resendVerificationRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req resendVerificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "Failed to send verification email")
		return
	}
	if err := h.accountSvc.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, r, err, "Failed to send verification email")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *AuthHandler) RequestAccount(w http.ResponseWriter, r *http.Request) {
	var in domain.AccountRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, "Failed to submit account request")
		return
	}
	if err := h.accountSvc.RequestAccount(r.Context(), in); err != nil {
		writeError(w, r, err, "Failed to submit account request")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "submitted"})
}
