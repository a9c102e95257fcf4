package service

import (
	"context"
	"strings"
	"time"

	"travana-referral-dashboard/internal/cache"
	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
)

type memberService struct {
	api      ReferralAPI
	identity IdentityProvider
	cache    QueryCache
	now      func() time.Time
}

func NewMemberService(api ReferralAPI, identity IdentityProvider, qc QueryCache) MemberService {
	return &memberService{api: api, identity: identity, cache: qc, now: time.Now}
}

func (s *memberService) ListMyOrganizations(ctx context.Context, sess *domain.Session) ([]domain.Organization, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	return cache.Load(ctx, s.cache, cache.OrgsKey(sess.UserID()), func(ctx context.Context) ([]domain.Organization, error) {
		orgs, err := s.api.ListOrganizations(ctx, sess)
		if err != nil {
			return nil, err
		}
		if orgs == nil {
			orgs = []domain.Organization{}
		}
		return orgs, nil
	})
}

// primaryOrg is the organization member pages operate on: the first one the
// user belongs to.
func (s *memberService) primaryOrg(ctx context.Context, sess *domain.Session) (*domain.Organization, error) {
	orgs, err := s.ListMyOrganizations(ctx, sess)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, domain.ErrNoOrganization
	}
	return &orgs[0], nil
}

func (s *memberService) ListMembers(ctx context.Context, sess *domain.Session) ([]domain.Member, error) {
	org, err := s.primaryOrg(ctx, sess)
	if err != nil {
		return nil, err
	}
	return cache.Load(ctx, s.cache, cache.MembersKey(org.ID), func(ctx context.Context) ([]domain.Member, error) {
		return s.api.ListMembers(ctx, sess, org.ID)
	})
}

func (s *memberService) InviteMember(ctx context.Context, sess *domain.Session, in domain.InviteMemberInput) (*domain.Invitation, error) {
	logger.EnterMethod("memberService.InviteMember", "role", in.Role)
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	org, err := s.primaryOrg(ctx, sess)
	if err != nil {
		return nil, err
	}
	in.OrganizationID = org.ID
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)

	inv, err := s.api.InviteMember(ctx, sess, in)
	if err != nil {
		logger.ExitMethodWithError("memberService.InviteMember", err, "orgID", org.ID)
		return nil, err
	}

	s.cache.Invalidate(cache.MembersKey(org.ID), cache.InvitationsKey(org.ID))
	logger.ExitMethod("memberService.InviteMember", "orgID", org.ID, "role", in.Role)
	return inv, nil
}

// ListInvitations returns the primary organization's open invitations.
func (s *memberService) ListInvitations(ctx context.Context, sess *domain.Session) ([]domain.Invitation, error) {
	org, err := s.primaryOrg(ctx, sess)
	if err != nil {
		return nil, err
	}
	all, err := cache.Load(ctx, s.cache, cache.InvitationsKey(org.ID), func(ctx context.Context) ([]domain.Invitation, error) {
		return s.identity.ListInvitations(ctx, sess.Token, org.ID)
	})
	if err != nil {
		return nil, err
	}
	return domain.PendingInvitations(all, s.now()), nil
}

// AcceptInvitation accepts on behalf of the session user. email is the
// address the invitation link was sent to; a different signed-in account
// must sign out first.
func (s *memberService) AcceptInvitation(ctx context.Context, sess *domain.Session, invitationID, email string) (*domain.Member, error) {
	logger.EnterMethod("memberService.AcceptInvitation", "invitationID", invitationID)
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	if strings.TrimSpace(invitationID) == "" {
		return nil, domain.NewValidationError("invitationId", "Invitation is required")
	}
	if email != "" && !strings.EqualFold(strings.TrimSpace(email), sess.User.Email) {
		logger.ExitMethodWithError("memberService.AcceptInvitation", domain.ErrInvitationEmailMismatch, "invitationID", invitationID)
		return nil, domain.ErrInvitationEmailMismatch
	}

	member, err := s.identity.AcceptInvitation(ctx, sess.Token, invitationID)
	if err != nil {
		logger.ExitMethodWithError("memberService.AcceptInvitation", err, "invitationID", invitationID)
		return nil, err
	}

	keys := []string{cache.OrgsKey(sess.UserID())}
	if member != nil && member.OrganizationID != "" {
		keys = append(keys, cache.MembersKey(member.OrganizationID), cache.InvitationsKey(member.OrganizationID))
	}
	s.cache.Invalidate(keys...)
	logger.InfoContext(ctx, "Invitation accepted", "invitation_id", invitationID, "user_id", sess.UserID())
	logger.ExitMethod("memberService.AcceptInvitation", "invitationID", invitationID)
	return member, nil
}
