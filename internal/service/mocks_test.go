package service

import (
	"context"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/mock"

	"travana-referral-dashboard/internal/cache"
	"travana-referral-dashboard/internal/domain"
)

// MockReferralAPI
type MockReferralAPI struct {
	mock.Mock
}

func (m *MockReferralAPI) ListReferrals(ctx context.Context, s *domain.Session, userID string) ([]domain.Referral, error) {
	args := m.Called(ctx, s, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Referral), args.Error(1)
}
func (m *MockReferralAPI) GetReferralRequests(ctx context.Context, s *domain.Session, userID string) ([]domain.ReferralRequest, error) {
	args := m.Called(ctx, s, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferralRequest), args.Error(1)
}
func (m *MockReferralAPI) GetReferral(ctx context.Context, s *domain.Session, id string) (*domain.Referral, error) {
	args := m.Called(ctx, s, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referral), args.Error(1)
}
func (m *MockReferralAPI) CreateReferral(ctx context.Context, s *domain.Session, in domain.CreateReferralInput) (*domain.Referral, error) {
	args := m.Called(ctx, s, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referral), args.Error(1)
}
func (m *MockReferralAPI) UpdateStatus(ctx context.Context, s *domain.Session, id string, status domain.ReferralStatus) (*domain.Referral, error) {
	args := m.Called(ctx, s, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referral), args.Error(1)
}
func (m *MockReferralAPI) GetReferrerStats(ctx context.Context, s *domain.Session, userID string) (*domain.ReferrerStats, error) {
	args := m.Called(ctx, s, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferrerStats), args.Error(1)
}
func (m *MockReferralAPI) GetCommissions(ctx context.Context, s *domain.Session, userID string) ([]domain.Referral, error) {
	args := m.Called(ctx, s, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Referral), args.Error(1)
}
func (m *MockReferralAPI) GetMonthlyStats(ctx context.Context, s *domain.Session, userID string) (*domain.AgentStats, error) {
	args := m.Called(ctx, s, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentStats), args.Error(1)
}
func (m *MockReferralAPI) SubmitAccountRequest(ctx context.Context, req domain.AccountRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockReferralAPI) ListOrganizations(ctx context.Context, s *domain.Session) ([]domain.Organization, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockReferralAPI) ListMembers(ctx context.Context, s *domain.Session, orgID string) ([]domain.Member, error) {
	args := m.Called(ctx, s, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockReferralAPI) InviteMember(ctx context.Context, s *domain.Session, in domain.InviteMemberInput) (*domain.Invitation, error) {
	args := m.Called(ctx, s, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

// MockIdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, in domain.SignInInput) (*domain.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockIdentityProvider) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockIdentityProvider) ChangePassword(ctx context.Context, token string, in domain.ChangePasswordInput) error {
	args := m.Called(ctx, token, in)
	return args.Error(0)
}
func (m *MockIdentityProvider) UpdateUser(ctx context.Context, token string, in domain.UpdateProfileInput) error {
	args := m.Called(ctx, token, in)
	return args.Error(0)
}
func (m *MockIdentityProvider) VerifyEmail(ctx context.Context, verificationToken string) error {
	args := m.Called(ctx, verificationToken)
	return args.Error(0)
}
func (m *MockIdentityProvider) SendVerificationEmail(ctx context.Context, email, callbackURL string) error {
	args := m.Called(ctx, email, callbackURL)
	return args.Error(0)
}
func (m *MockIdentityProvider) ListInvitations(ctx context.Context, token, orgID string) ([]domain.Invitation, error) {
	args := m.Called(ctx, token, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockIdentityProvider) AcceptInvitation(ctx context.Context, token, invitationID string) (*domain.Member, error) {
	args := m.Called(ctx, token, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

// MockQueryCache always misses on reads and records invalidations.
type MockQueryCache struct {
	mock.Mock
}

func (m *MockQueryCache) GetOrLoad(ctx context.Context, key string, load cache.Loader) (any, error) {
	return load(ctx)
}
func (m *MockQueryCache) Invalidate(keys ...string) int {
	args := m.Called(keys)
	return args.Int(0)
}

// invalidated returns the keys of every recorded Invalidate call, flattened.
func (m *MockQueryCache) invalidated() []string {
	var keys []string
	for _, c := range m.Calls {
		if c.Method == "Invalidate" {
			keys = append(keys, c.Arguments.Get(0).([]string)...)
		}
	}
	return keys
}

// MockShareRepo
type MockShareRepo struct {
	mock.Mock
}

func (m *MockShareRepo) ListByUser(ctx context.Context, userID string) ([]domain.ShareMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShareMessage), args.Error(1)
}
func (m *MockShareRepo) GetByPlatform(ctx context.Context, userID string, platform domain.Platform) (*domain.ShareMessage, error) {
	args := m.Called(ctx, userID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareMessage), args.Error(1)
}
func (m *MockShareRepo) Upsert(ctx context.Context, msg *domain.ShareMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockShareRepo) SetActive(ctx context.Context, userID string, platform domain.Platform, active bool) error {
	args := m.Called(ctx, userID, platform, active)
	return args.Error(0)
}
func (m *MockShareRepo) Delete(ctx context.Context, userID string, platform domain.Platform) error {
	args := m.Called(ctx, userID, platform)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendShareEmail(ctx context.Context, msg domain.OutboundEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// fakeMailSender captures the last message handed to SendGrid.
type fakeMailSender struct {
	sent     *mail.SGMailV3
	response *rest.Response
	err      error
}

func (f *fakeMailSender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = email
	if f.err != nil {
		return nil, f.err
	}
	if f.response == nil {
		return &rest.Response{StatusCode: 202}, nil
	}
	return f.response, nil
}
