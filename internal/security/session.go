package security

import (
	"context"
	"errors"
	"strings"

	"travana-referral-dashboard/internal/domain"
)

var ErrMissingToken = errors.New("authorization token is not provided")

// SessionFetcher resolves a token with the identity provider.
type SessionFetcher interface {
	GetSession(ctx context.Context, token string) (*domain.Session, error)
}

// SessionVerifier turns a bearer token into a session, either by checking
// the signature locally or by asking the identity provider.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Session, error)
}

type sessionVerifier struct {
	tokens  TokenManager
	fetcher SessionFetcher
}

// NewSessionVerifier verifies locally when tokens is non-nil, remotely otherwise.
func NewSessionVerifier(tokens TokenManager, fetcher SessionFetcher) SessionVerifier {
	return &sessionVerifier{tokens: tokens, fetcher: fetcher}
}

func (v *sessionVerifier) Verify(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if v.tokens != nil {
		claims, err := v.tokens.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return claims.Session(token), nil
	}
	if v.fetcher == nil {
		return nil, ErrInvalidToken
	}
	return v.fetcher.GetSession(ctx, token)
}

// ExtractBearer returns the token of an Authorization header value.
func ExtractBearer(header string) string {
	token := strings.TrimSpace(header)
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
