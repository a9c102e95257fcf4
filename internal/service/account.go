package service

import (
	"context"
	"strings"

	"travana-referral-dashboard/internal/cache"
	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
)

type accountService struct {
	api         ReferralAPI
	identity    IdentityProvider
	cache       QueryCache
	callbackURL string
}

// NewAccountService proxies credential and profile operations to the
// identity provider. callbackURL is where verification links land.
func NewAccountService(api ReferralAPI, identity IdentityProvider, qc QueryCache, callbackURL string) AccountService {
	return &accountService{api: api, identity: identity, cache: qc, callbackURL: callbackURL}
}

func (s *accountService) RequestAccount(ctx context.Context, in domain.AccountRequest) error {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.OrgName = strings.TrimSpace(in.OrgName)
	if err := in.Validate(); err != nil {
		return err
	}
	in.Role, _ = domain.ParseMemberRole(string(in.Role))
	if in.Role != domain.RoleOwner {
		in.OrgName = ""
	}

	if err := s.api.SubmitAccountRequest(ctx, in); err != nil {
		logger.ErrorContext(ctx, "Failed to submit account request", "role", in.Role, "error", err)
		return err
	}
	logger.InfoContext(ctx, "Account request submitted", "role", in.Role)
	return nil
}

func (s *accountService) SignIn(ctx context.Context, in domain.SignInInput) (*domain.Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.identity.SignIn(ctx, in)
}

// SignOut ends the session and forgets everything cached for the user.
func (s *accountService) SignOut(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	if err := s.identity.SignOut(ctx, sess.Token); err != nil {
		return err
	}
	id := sess.UserID()
	s.cache.Invalidate(
		cache.ReferralsKey(id),
		cache.RequestsKey(id),
		cache.StatsKey(id),
		cache.CommissionKey(id),
		cache.MonthlyKey(id),
		cache.OrgsKey(id),
	)
	return nil
}

func (s *accountService) ChangePassword(ctx context.Context, sess *domain.Session, in domain.ChangePasswordInput) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	if err := in.Validate(); err != nil {
		return err
	}
	return s.identity.ChangePassword(ctx, sess.Token, in)
}

func (s *accountService) UpdateProfile(ctx context.Context, sess *domain.Session, in domain.UpdateProfileInput) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if err := in.Validate(); err != nil {
		return err
	}
	return s.identity.UpdateUser(ctx, sess.Token, in)
}

func (s *accountService) ResendVerification(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !domain.ValidEmail(email) {
		return domain.NewValidationError("email", "Please enter a valid email address")
	}
	return s.identity.SendVerificationEmail(ctx, email, s.callbackURL)
}

func (s *accountService) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.NewValidationError("token", "Verification token is required")
	}
	return s.identity.VerifyEmail(ctx, token)
}
