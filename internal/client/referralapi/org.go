package referralapi

import (
	"context"
	"net/url"

	"travana-referral-dashboard/internal/domain"
)

// SubmitAccountRequest files a sign-up request for review. No session.
func (c *Client) SubmitAccountRequest(ctx context.Context, req domain.AccountRequest) error {
	return c.rest.Post(ctx, "/api/users/account-request", "", req, nil)
}

func (c *Client) ListOrganizations(ctx context.Context, s *domain.Session) ([]domain.Organization, error) {
	var out []domain.Organization
	if err := c.rest.Get(ctx, "/api/org/list", token(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

type membersResponse struct {
	Members []domain.Member `json:"members"`
}

func (c *Client) ListMembers(ctx context.Context, s *domain.Session, orgID string) ([]domain.Member, error) {
	var out membersResponse
	if err := c.rest.Get(ctx, "/api/org/list/all/"+url.PathEscape(orgID), token(s), &out); err != nil {
		return nil, err
	}
	if out.Members == nil {
		return []domain.Member{}, nil
	}
	return out.Members, nil
}

// InviteMember asks the service to create and send an organization invitation.
func (c *Client) InviteMember(ctx context.Context, s *domain.Session, in domain.InviteMemberInput) (*domain.Invitation, error) {
	var out domain.Invitation
	if err := c.rest.Post(ctx, "/api/auth-options/invitation", token(s), in, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, nil
	}
	return &out, nil
}
