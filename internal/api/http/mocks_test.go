package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/security"
)

// MockReferralService
type MockReferralService struct {
	mock.Mock
}

func (m *MockReferralService) Statuses() []domain.StatusInfo {
	return domain.Statuses()
}
func (m *MockReferralService) ListReferrals(ctx context.Context, s *domain.Session, userID string, f domain.ReferralFilter) ([]domain.Referral, error) {
	args := m.Called(ctx, s, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Referral), args.Error(1)
}
func (m *MockReferralService) ListReferralRequests(ctx context.Context, s *domain.Session, userID string) ([]domain.ReferralRequest, error) {
	args := m.Called(ctx, s, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferralRequest), args.Error(1)
}
func (m *MockReferralService) GetReferrerStats(ctx context.Context, s *domain.Session, userID string) (*domain.ReferrerStats, error) {
	args := m.Called(ctx, s, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferrerStats), args.Error(1)
}
func (m *MockReferralService) GetMonthlyStats(ctx context.Context, s *domain.Session, userID string) (*domain.AgentStats, error) {
	args := m.Called(ctx, s, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentStats), args.Error(1)
}
func (m *MockReferralService) GetCommissionReport(ctx context.Context, s *domain.Session, userID string, f domain.ReferralFilter) (*domain.CommissionReport, error) {
	args := m.Called(ctx, s, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionReport), args.Error(1)
}
func (m *MockReferralService) SubmitReferral(ctx context.Context, s *domain.Session, in domain.CreateReferralInput) (*domain.CreateReferralResult, error) {
	args := m.Called(ctx, s, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateReferralResult), args.Error(1)
}
func (m *MockReferralService) SubmitPublicReferral(ctx context.Context, ref string, in domain.CreateReferralInput) (*domain.CreateReferralResult, error) {
	args := m.Called(ctx, ref, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateReferralResult), args.Error(1)
}
func (m *MockReferralService) UpdateStatus(ctx context.Context, s *domain.Session, referralID string, status domain.ReferralStatus) (*domain.Referral, error) {
	args := m.Called(ctx, s, referralID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referral), args.Error(1)
}
func (m *MockReferralService) Dashboard(ctx context.Context, s *domain.Session) (*domain.Dashboard, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

// MockShareService
type MockShareService struct {
	mock.Mock
}

func (m *MockShareService) ListShareMessages(ctx context.Context, s *domain.Session) ([]domain.ShareMessage, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShareMessage), args.Error(1)
}
func (m *MockShareService) SaveShareMessage(ctx context.Context, s *domain.Session, in domain.ShareMessageInput) (*domain.ShareMessage, error) {
	args := m.Called(ctx, s, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareMessage), args.Error(1)
}
func (m *MockShareService) SetShareMessageActive(ctx context.Context, s *domain.Session, platform domain.Platform, active bool) error {
	args := m.Called(ctx, s, platform, active)
	return args.Error(0)
}
func (m *MockShareService) ResetShareMessage(ctx context.Context, s *domain.Session, platform domain.Platform) error {
	args := m.Called(ctx, s, platform)
	return args.Error(0)
}
func (m *MockShareService) PreviewShareMessage(ctx context.Context, s *domain.Session, platform domain.Platform) (*domain.SharePreview, error) {
	args := m.Called(ctx, s, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharePreview), args.Error(1)
}
func (m *MockShareService) ShareLinks(ctx context.Context, s *domain.Session) (*domain.ShareLinks, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareLinks), args.Error(1)
}
func (m *MockShareService) SendShareEmail(ctx context.Context, s *domain.Session, to string) error {
	args := m.Called(ctx, s, to)
	return args.Error(0)
}

// MockMemberService
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) ListMyOrganizations(ctx context.Context, s *domain.Session) ([]domain.Organization, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockMemberService) ListMembers(ctx context.Context, s *domain.Session) ([]domain.Member, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberService) InviteMember(ctx context.Context, s *domain.Session, in domain.InviteMemberInput) (*domain.Invitation, error) {
	args := m.Called(ctx, s, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockMemberService) ListInvitations(ctx context.Context, s *domain.Session) ([]domain.Invitation, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockMemberService) AcceptInvitation(ctx context.Context, s *domain.Session, invitationID, email string) (*domain.Member, error) {
	args := m.Called(ctx, s, invitationID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

// MockAccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) RequestAccount(ctx context.Context, in domain.AccountRequest) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}
func (m *MockAccountService) SignIn(ctx context.Context, in domain.SignInInput) (*domain.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAccountService) SignOut(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockAccountService) ChangePassword(ctx context.Context, s *domain.Session, in domain.ChangePasswordInput) error {
	args := m.Called(ctx, s, in)
	return args.Error(0)
}
func (m *MockAccountService) UpdateProfile(ctx context.Context, s *domain.Session, in domain.UpdateProfileInput) error {
	args := m.Called(ctx, s, in)
	return args.Error(0)
}
func (m *MockAccountService) ResendVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockAccountService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// fakeVerifier knows a fixed set of tokens.
type fakeVerifier map[string]*domain.Session

func (f fakeVerifier) Verify(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, security.ErrMissingToken
	}
	s, ok := f[token]
	if !ok {
		return nil, security.ErrInvalidToken
	}
	return s, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }
