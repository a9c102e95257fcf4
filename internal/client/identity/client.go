package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"travana-referral-dashboard/internal/client/rest"
	"travana-referral-dashboard/internal/domain"
)

const serviceName = "identity"

// Client is the identity provider: sessions, credentials, email
// verification and organization invitations. It is consumed, never
// implemented, by this service.
type Client struct {
	rest *rest.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rest: rest.NewClient(serviceName, baseURL, timeout)}
}

func NewClientWithTransport(t *rest.Client) *Client {
	return &Client{rest: t}
}

type sessionResponse struct {
	Session *struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	} `json:"session"`
	User *domain.User `json:"user"`
}

// GetSession resolves token into a session. A null session means the token
// is not (or no longer) valid.
func (c *Client) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	var out sessionResponse
	if err := c.rest.Get(ctx, "/api/auth/get-session", token, &out); err != nil {
		return nil, err
	}
	if out.Session == nil || out.User == nil {
		return nil, &rest.APIError{Service: serviceName, StatusCode: http.StatusUnauthorized, Message: "session not found"}
	}
	return &domain.Session{User: *out.User, Token: token, ExpiresAt: out.Session.ExpiresAt}, nil
}

type signInResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (c *Client) SignIn(ctx context.Context, in domain.SignInInput) (*domain.Session, error) {
	var out signInResponse
	if err := c.rest.Post(ctx, "/api/auth/sign-in/email", "", in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, fmt.Errorf("identity sign-in returned no session: %w", rest.ErrUnavailable)
	}
	return &domain.Session{User: *out.User, Token: out.Token}, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.rest.Post(ctx, "/api/auth/sign-out", token, struct{}{}, nil)
}

type changePasswordRequest struct {
	CurrentPassword     string `json:"currentPassword"`
	NewPassword         string `json:"newPassword"`
	RevokeOtherSessions bool   `json:"revokeOtherSessions"`
}

func (c *Client) ChangePassword(ctx context.Context, token string, in domain.ChangePasswordInput) error {
	req := changePasswordRequest{
		CurrentPassword:     in.CurrentPassword,
		NewPassword:         in.NewPassword,
		RevokeOtherSessions: in.RevokeOtherSessions,
	}
	return c.rest.Post(ctx, "/api/auth/change-password", token, req, nil)
}

type updateUserRequest struct {
	Name        string `json:"name"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (c *Client) UpdateUser(ctx context.Context, token string, in domain.UpdateProfileInput) error {
	req := updateUserRequest{
		Name:        in.FirstName + " " + in.LastName,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
	}
	return c.rest.Post(ctx, "/api/auth/update-user", token, req, nil)
}

// VerifyEmail confirms the address with the token from the verification link.
func (c *Client) VerifyEmail(ctx context.Context, verificationToken string) error {
	return c.rest.Get(ctx, "/api/auth/verify-email?token="+url.QueryEscape(verificationToken), "", nil)
}

type sendVerificationRequest struct {
	Email       string `json:"email"`
	CallbackURL string `json:"callbackURL,omitempty"`
}

func (c *Client) SendVerificationEmail(ctx context.Context, email, callbackURL string) error {
	return c.rest.Post(ctx, "/api/auth/send-verification-email", "", sendVerificationRequest{Email: email, CallbackURL: callbackURL}, nil)
}

func (c *Client) ListInvitations(ctx context.Context, token, orgID string) ([]domain.Invitation, error) {
	var out []domain.Invitation
	path := "/api/auth/organization/list-invitations?organizationId=" + url.QueryEscape(orgID)
	if err := c.rest.Get(ctx, path, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type acceptInvitationRequest struct {
	InvitationID string `json:"invitationId"`
}

type acceptInvitationResponse struct {
	Invitation domain.Invitation `json:"invitation"`
	Member     domain.Member     `json:"member"`
}

func (c *Client) AcceptInvitation(ctx context.Context, token, invitationID string) (*domain.Member, error) {
	var out acceptInvitationResponse
	if err := c.rest.Post(ctx, "/api/auth/organization/accept-invitation", token, acceptInvitationRequest{InvitationID: invitationID}, &out); err != nil {
		return nil, err
	}
	return &out.Member, nil
}
