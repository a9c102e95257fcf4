package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/service"
)

type ShareHandler struct {
	shareSvc service.ShareService
}

func NewShareHandler(shareSvc service.ShareService) *ShareHandler {
	return &ShareHandler{shareSvc: shareSvc}
}

func platformVar(r *http.Request) domain.Platform {
	return domain.Platform(mux.Vars(r)["platform"])
}

func (h *ShareHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load share messages")
		return
	}
	msgs, err := h.shareSvc.ListShareMessages(r.Context(), sess)
	if err != nil {
		writeError(w, r, err, "Failed to load share messages")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *ShareHandler) SaveMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to save share message")
		return
	}
	var in domain.ShareMessageInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, "Failed to save share message")
		return
	}
	msg, err := h.shareSvc.SaveShareMessage(r.Context(), sess, in)
	if err != nil {
		writeError(w, r, err, "Failed to save share message")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

type setActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

func (h *ShareHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to update share message")
		return
	}
	var req setActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "Failed to update share message")
		return
	}
	if req.IsActive == nil {
		writeError(w, r, domain.NewValidationError("isActive", "isActive is required"), "Failed to update share message")
		return
	}
	if err := h.shareSvc.SetShareMessageActive(r.Context(), sess, platformVar(r), *req.IsActive); err != nil {
		writeError(w, r, err, "Failed to update share message")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShareHandler) ResetMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to reset share message")
		return
	}
	if err := h.shareSvc.ResetShareMessage(r.Context(), sess, platformVar(r)); err != nil {
		writeError(w, r, err, "Failed to reset share message")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShareHandler) Preview(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to preview share message")
		return
	}
	preview, err := h.shareSvc.PreviewShareMessage(r.Context(), sess, platformVar(r))
	if err != nil {
		writeError(w, r, err, "Failed to preview share message")
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (h *ShareHandler) Links(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to build share links")
		return
	}
	links, err := h.shareSvc.ShareLinks(r.Context(), sess)
	if err != nil {
		writeError(w, r, err, "Failed to build share links")
		return
	}
	writeJSON(w, http.StatusOK, links)
}

type shareEmailRequest struct {
	To string `json:"to"`
}

func (h *ShareHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to send email")
		return
	}
	var req shareEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "Failed to send email")
		return
	}
	if err := h.shareSvc.SendShareEmail(r.Context(), sess, req.To); err != nil {
		writeError(w, r, err, "Failed to send email")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
