package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"travana-referral-dashboard/internal/client/rest"
	"travana-referral-dashboard/internal/config"
	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
	"travana-referral-dashboard/internal/security"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger tags the request with an id and logs one line when it
// completes.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := logger.WithRequestID(r.Context(), id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.HTTPRequest(ctx, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type AuthMiddleware struct {
	verifier security.SessionVerifier
}

func NewAuthMiddleware(v security.SessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: v}
}

// Handler authenticates requests according to the route's security level
// and puts the session on the request context.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.SecurityVerified
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				level = config.GetSecurityLevel(r.Method, tmpl)
			}
		}

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token := security.ExtractBearer(r.Header.Get("Authorization"))
		sess, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			writeError(w, r, err, "Authentication failed")
			return
		}

		if level == config.SecurityVerified && !sess.User.EmailVerified {
			writeJSON(w, http.StatusForbidden, ErrorResponse{
				Error:  "Please verify your email address",
				Code:   rest.CodeEmailNotVerified,
				Action: "resend_verification",
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.WithSession(r.Context(), sess)))
	})
}

// GetSessionFromRequest returns the session the auth middleware attached.
func GetSessionFromRequest(r *http.Request) (*domain.Session, error) {
	return domain.SessionFromContext(r.Context())
}
