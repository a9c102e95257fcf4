package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/service"
)

// OrganizationHandler serves the team pages
type OrganizationHandler struct {
	memberSvc service.MemberService
}

func NewOrganizationHandler(memberSvc service.MemberService) *OrganizationHandler {
	return &OrganizationHandler{memberSvc: memberSvc}
}

func (h *OrganizationHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load organizations")
		return
	}
	orgs, err := h.memberSvc.ListMyOrganizations(r.Context(), sess)
	if err != nil {
		writeError(w, r, err, "Failed to load organizations")
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load members")
		return
	}
	members, err := h.memberSvc.ListMembers(r.Context(), sess)
	if err != nil {
		writeError(w, r, err, "Failed to load members")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *OrganizationHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load invitations")
		return
	}
	invites, err := h.memberSvc.ListInvitations(r.Context(), sess)
	if err != nil {
		writeError(w, r, err, "Failed to load invitations")
		return
	}
	writeJSON(w, http.StatusOK, invites)
}

func (h *OrganizationHandler) InviteMember(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to send invitation")
		return
	}
	var in domain.InviteMemberInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, "Failed to send invitation")
		return
	}
	inv, err := h.memberSvc.InviteMember(r.Context(), sess, in)
	if err != nil {
		writeError(w, r, err, "Failed to send invitation")
		return
	}
	if inv == nil {
		writeJSON(w, http.StatusCreated, map[string]string{"status": "invited"})
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

type acceptInvitationRequest struct {
	Email string `json:"email"`
}

// AcceptInvitation takes the invited address from the body or ?email=, as
// sent by the invitation link.
func (h *OrganizationHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to accept invitation")
		return
	}
	email := r.URL.Query().Get("email")
	if r.ContentLength > 0 {
		var req acceptInvitationRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, "Failed to accept invitation")
			return
		}
		if req.Email != "" {
			email = req.Email
		}
	}
	member, err := h.memberSvc.AcceptInvitation(r.Context(), sess, mux.Vars(r)["id"], email)
	if err != nil {
		writeError(w, r, err, "Failed to accept invitation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"member": member, "redirect": "/dashboard"})
}
