package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Referral     *ReferralHandler
	Share        *ShareHandler
	Organization *OrganizationHandler
	Auth         *AuthHandler
	Health       Pinger
}

// NewRouter registers every dashboard route. Route templates must stay in
// step with config.EndpointSecurityConfig. Middleware registered here only
// sees matched routes; wrap the router in RequestLogger to log everything.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(auth.Handler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	})

	r.HandleFunc("/healthz", healthHandler(h.Health)).Methods(http.MethodGet)

	// Public intake
	r.HandleFunc("/public-client-request", h.Referral.PublicForm).Methods(http.MethodGet)
	r.HandleFunc("/public-client-request", h.Referral.SubmitPublic).Methods(http.MethodPost)

	// Auth
	r.HandleFunc("/api/auth/sign-in", h.Auth.SignIn).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/sign-out", h.Auth.SignOut).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/change-password", h.Auth.ChangePassword).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/verify-email", h.Auth.VerifyEmail).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/send-verification-email", h.Auth.SendVerificationEmail).Methods(http.MethodPost)
	r.HandleFunc("/api/users/account-request", h.Auth.RequestAccount).Methods(http.MethodPost)
	r.HandleFunc("/api/users/me", h.Auth.UpdateProfile).Methods(http.MethodPut)
	r.HandleFunc("/api/session", h.Auth.Session).Methods(http.MethodGet)

	// Referrals
	r.HandleFunc("/api/dashboard", h.Referral.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/referrals/statuses", h.Referral.Statuses).Methods(http.MethodGet)
	r.HandleFunc("/api/referrals/user/{id}", h.Referral.ListReferrals).Methods(http.MethodGet)
	r.HandleFunc("/api/referrals/user/{id}/stats", h.Referral.GetReferrerStats).Methods(http.MethodGet)
	r.HandleFunc("/api/referrals/user/{id}/commission", h.Referral.GetCommissionReport).Methods(http.MethodGet)
	r.HandleFunc("/api/referrals/user/{id}/monthly-stats", h.Referral.GetMonthlyStats).Methods(http.MethodGet)
	r.HandleFunc("/api/referrals/{id}", h.Referral.ListReferralRequests).Methods(http.MethodGet)
	r.HandleFunc("/api/referrals", h.Referral.CreateReferral).Methods(http.MethodPost)
	r.HandleFunc("/api/referrals/{id}/status", h.Referral.UpdateStatus).Methods(http.MethodPut)

	// Share messages
	r.HandleFunc("/api/share-messages", h.Share.ListMessages).Methods(http.MethodGet)
	r.HandleFunc("/api/share-messages", h.Share.SaveMessage).Methods(http.MethodPost)
	r.HandleFunc("/api/share-messages/{platform}", h.Share.SetActive).Methods(http.MethodPatch)
	r.HandleFunc("/api/share-messages/{platform}", h.Share.ResetMessage).Methods(http.MethodDelete)
	r.HandleFunc("/api/share-messages/{platform}/preview", h.Share.Preview).Methods(http.MethodGet)
	r.HandleFunc("/api/share-links", h.Share.Links).Methods(http.MethodGet)
	r.HandleFunc("/api/share/email", h.Share.SendEmail).Methods(http.MethodPost)

	// Organization
	r.HandleFunc("/api/org/list", h.Organization.ListOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/api/org/members", h.Organization.ListMembers).Methods(http.MethodGet)
	r.HandleFunc("/api/org/invitations", h.Organization.ListInvitations).Methods(http.MethodGet)
	r.HandleFunc("/api/org/invitations", h.Organization.InviteMember).Methods(http.MethodPost)
	r.HandleFunc("/api/invitations/{id}/accept", h.Organization.AcceptInvitation).Methods(http.MethodPost)

	return r
}

func healthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			if err := p.Ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
