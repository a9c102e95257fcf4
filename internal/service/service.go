package service

import (
	"context"

	"travana-referral-dashboard/internal/cache"
	"travana-referral-dashboard/internal/domain"
)

type ReferralService interface {
	Statuses() []domain.StatusInfo
	ListReferrals(ctx context.Context, s *domain.Session, userID string, f domain.ReferralFilter) ([]domain.Referral, error)
	ListReferralRequests(ctx context.Context, s *domain.Session, userID string) ([]domain.ReferralRequest, error)
	GetReferrerStats(ctx context.Context, s *domain.Session, userID string) (*domain.ReferrerStats, error)
	GetMonthlyStats(ctx context.Context, s *domain.Session, userID string) (*domain.AgentStats, error)
	GetCommissionReport(ctx context.Context, s *domain.Session, userID string, f domain.ReferralFilter) (*domain.CommissionReport, error)
	SubmitReferral(ctx context.Context, s *domain.Session, in domain.CreateReferralInput) (*domain.CreateReferralResult, error)
	SubmitPublicReferral(ctx context.Context, ref string, in domain.CreateReferralInput) (*domain.CreateReferralResult, error)
	UpdateStatus(ctx context.Context, s *domain.Session, referralID string, status domain.ReferralStatus) (*domain.Referral, error)
	Dashboard(ctx context.Context, s *domain.Session) (*domain.Dashboard, error)
}

type ShareService interface {
	ListShareMessages(ctx context.Context, s *domain.Session) ([]domain.ShareMessage, error)
	SaveShareMessage(ctx context.Context, s *domain.Session, in domain.ShareMessageInput) (*domain.ShareMessage, error)
	SetShareMessageActive(ctx context.Context, s *domain.Session, platform domain.Platform, active bool) error
	ResetShareMessage(ctx context.Context, s *domain.Session, platform domain.Platform) error
	PreviewShareMessage(ctx context.Context, s *domain.Session, platform domain.Platform) (*domain.SharePreview, error)
	ShareLinks(ctx context.Context, s *domain.Session) (*domain.ShareLinks, error)
	SendShareEmail(ctx context.Context, s *domain.Session, to string) error
}

type MemberService interface {
	ListMyOrganizations(ctx context.Context, s *domain.Session) ([]domain.Organization, error)
	ListMembers(ctx context.Context, s *domain.Session) ([]domain.Member, error)
	InviteMember(ctx context.Context, s *domain.Session, in domain.InviteMemberInput) (*domain.Invitation, error)
	ListInvitations(ctx context.Context, s *domain.Session) ([]domain.Invitation, error)
	AcceptInvitation(ctx context.Context, s *domain.Session, invitationID, email string) (*domain.Member, error)
}

type AccountService interface {
	RequestAccount(ctx context.Context, in domain.AccountRequest) error
	SignIn(ctx context.Context, in domain.SignInInput) (*domain.Session, error)
	SignOut(ctx context.Context, s *domain.Session) error
	ChangePassword(ctx context.Context, s *domain.Session, in domain.ChangePasswordInput) error
	UpdateProfile(ctx context.Context, s *domain.Session, in domain.UpdateProfileInput) error
	ResendVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) error
}

type EmailService interface {
	SendShareEmail(ctx context.Context, msg domain.OutboundEmail) error
}

// QueryCache is the slice of cache.QueryCache the services rely on.
type QueryCache interface {
	GetOrLoad(ctx context.Context, key string, load cache.Loader) (any, error)
	Invalidate(keys ...string) int
}

// ReferralAPI is the remote referral service, see referralapi.Client.
type ReferralAPI interface {
	ListReferrals(ctx context.Context, s *domain.Session, userID string) ([]domain.Referral, error)
	GetReferralRequests(ctx context.Context, s *domain.Session, userID string) ([]domain.ReferralRequest, error)
	GetReferral(ctx context.Context, s *domain.Session, id string) (*domain.Referral, error)
	CreateReferral(ctx context.Context, s *domain.Session, in domain.CreateReferralInput) (*domain.Referral, error)
	UpdateStatus(ctx context.Context, s *domain.Session, id string, status domain.ReferralStatus) (*domain.Referral, error)
	GetReferrerStats(ctx context.Context, s *domain.Session, userID string) (*domain.ReferrerStats, error)
	GetCommissions(ctx context.Context, s *domain.Session, userID string) ([]domain.Referral, error)
	GetMonthlyStats(ctx context.Context, s *domain.Session, userID string) (*domain.AgentStats, error)
	SubmitAccountRequest(ctx context.Context, req domain.AccountRequest) error
	ListOrganizations(ctx context.Context, s *domain.Session) ([]domain.Organization, error)
	ListMembers(ctx context.Context, s *domain.Session, orgID string) ([]domain.Member, error)
	InviteMember(ctx context.Context, s *domain.Session, in domain.InviteMemberInput) (*domain.Invitation, error)
}

// IdentityProvider is the external session provider, see identity.Client.
type IdentityProvider interface {
	SignIn(ctx context.Context, in domain.SignInInput) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, token string, in domain.ChangePasswordInput) error
	UpdateUser(ctx context.Context, token string, in domain.UpdateProfileInput) error
	VerifyEmail(ctx context.Context, verificationToken string) error
	SendVerificationEmail(ctx context.Context, email, callbackURL string) error
	ListInvitations(ctx context.Context, token, orgID string) ([]domain.Invitation, error)
	AcceptInvitation(ctx context.Context, token, invitationID string) (*domain.Member, error)
}
