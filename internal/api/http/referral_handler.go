package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/service"
)

type ReferralHandler struct {
	referralSvc service.ReferralService
}

func NewReferralHandler(referralSvc service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralSvc: referralSvc}
}

// filterFromQuery reads ?search=, ?status= and ?since= (RFC 3339 or a date).
func filterFromQuery(r *http.Request) (domain.ReferralFilter, error) {
	q := r.URL.Query()
	f := domain.ReferralFilter{Search: q.Get("search"), Status: q.Get("status")}
	if raw := q.Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse(time.DateOnly, raw)
		}
		if err != nil {
			return f, domain.NewValidationError("since", "Invalid date")
		}
		f.Since = t
	}
	return f, nil
}

func (h *ReferralHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.referralSvc.Statuses())
}

func (h *ReferralHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load dashboard")
		return
	}
	d, err := h.referralSvc.Dashboard(r.Context(), sess)
	if err != nil {
		writeError(w, r, err, "Failed to load dashboard")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *ReferralHandler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load referrals")
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, r, err, "Failed to load referrals")
		return
	}
	list, err := h.referralSvc.ListReferrals(r.Context(), sess, mux.Vars(r)["id"], f)
	if err != nil {
		writeError(w, r, err, "Failed to load referrals")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListReferralRequests serves the legacy intake records. ?format=referral
// converts them to the referral shape.
func (h *ReferralHandler) ListReferralRequests(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load referral requests")
		return
	}
	reqs, err := h.referralSvc.ListReferralRequests(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "Failed to load referral requests")
		return
	}
	if r.URL.Query().Get("format") == "referral" {
		writeJSON(w, http.StatusOK, domain.ReferralRequestsToReferrals(reqs))
		return
	}
	if reqs == nil {
		reqs = []domain.ReferralRequest{}
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *ReferralHandler) GetReferrerStats(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load stats")
		return
	}
	stats, err := h.referralSvc.GetReferrerStats(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "Failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ReferralHandler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load stats")
		return
	}
	stats, err := h.referralSvc.GetMonthlyStats(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "Failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ReferralHandler) GetCommissionReport(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to load commissions")
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, r, err, "Failed to load commissions")
		return
	}
	report, err := h.referralSvc.GetCommissionReport(r.Context(), sess, mux.Vars(r)["id"], f)
	if err != nil {
		writeError(w, r, err, "Failed to load commissions")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReferralHandler) CreateReferral(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to create referral")
		return
	}
	var in domain.CreateReferralInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, "Failed to create referral")
		return
	}
	res, err := h.referralSvc.SubmitReferral(r.Context(), sess, in)
	if err != nil {
		writeError(w, r, err, "Failed to create referral")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ReferralHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromRequest(r)
	if err != nil {
		writeError(w, r, err, "Failed to update status")
		return
	}
	var req domain.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "Failed to update status")
		return
	}
	ref, err := h.referralSvc.UpdateStatus(r.Context(), sess, mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, r, err, "Failed to update status")
		return
	}
	if ref == nil {
		writeJSON(w, http.StatusOK, map[string]any{"id": mux.Vars(r)["id"], "status": req.Status})
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

type publicFormResponse struct {
	Ref        string `json:"ref"`
	ReferredBy string `json:"referredBy"`
}

// PublicForm describes the intake form behind a referral link.
func (h *ReferralHandler) PublicForm(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref == "" {
		writeError(w, r, domain.NewValidationError("ref", "Referral code is required"), "Invalid referral link")
		return
	}
	// The intake page shows the code itself as "Referred by".
	writeJSON(w, http.StatusOK, publicFormResponse{Ref: ref, ReferredBy: ref})
}

func (h *ReferralHandler) SubmitPublic(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateReferralInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, "Failed to create referral")
		return
	}
	res, err := h.referralSvc.SubmitPublicReferral(r.Context(), r.URL.Query().Get("ref"), in)
	if err != nil {
		writeError(w, r, err, "Failed to create referral")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
