// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic   SecurityLevel = iota // No authentication
	SecuritySession                       // Valid session token required
	SecurityVerified                      // Session with a verified email required
)

// EndpointSecurityConfig maps "METHOD /route/template" to its security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Health and public intake
	"GET /healthz":                SecurityPublic,
	"GET /public-client-request":  SecurityPublic,
	"POST /public-client-request": SecurityPublic,
	"GET /api/referrals/statuses": SecurityPublic,

	// Auth - Public
	"POST /api/auth/sign-in":                 SecurityPublic,
	"POST /api/auth/verify-email":            SecurityPublic,
	"POST /api/auth/send-verification-email": SecurityPublic,
	"POST /api/users/account-request":        SecurityPublic,

	// Auth - Session Protected
	"GET /api/session":               SecuritySession,
	"POST /api/auth/sign-out":        SecuritySession,
	"POST /api/auth/change-password": SecuritySession,
	"PUT /api/users/me":              SecuritySession,

	// Invitations can be accepted before the email is verified
	"POST /api/invitations/{id}/accept": SecuritySession,

	// Dashboard and referrals - Verified
	"GET /api/dashboard":                         SecurityVerified,
	"GET /api/referrals/user/{id}":               SecurityVerified,
	"GET /api/referrals/user/{id}/stats":         SecurityVerified,
	"GET /api/referrals/user/{id}/commission":    SecurityVerified,
	"GET /api/referrals/user/{id}/monthly-stats": SecurityVerified,
	"GET /api/referrals/{id}":                    SecurityVerified,
	"POST /api/referrals":                        SecurityVerified,
	"PUT /api/referrals/{id}/status":             SecurityVerified,

	// Share messages - Verified
	"GET /api/share-messages":                    SecurityVerified,
	"POST /api/share-messages":                   SecurityVerified,
	"PATCH /api/share-messages/{platform}":       SecurityVerified,
	"DELETE /api/share-messages/{platform}":      SecurityVerified,
	"GET /api/share-messages/{platform}/preview": SecurityVerified,
	"GET /api/share-links":                       SecurityVerified,
	"POST /api/share/email":                      SecurityVerified,

	// Organization - Verified
	"GET /api/org/list":         SecurityVerified,
	"GET /api/org/members":      SecurityVerified,
	"POST /api/org/invitations": SecurityVerified,
	"GET /api/org/invitations":  SecurityVerified,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+pathTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityVerified
}
