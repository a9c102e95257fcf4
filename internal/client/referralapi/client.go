package referralapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"travana-referral-dashboard/internal/client/rest"
	"travana-referral-dashboard/internal/domain"
)

const serviceName = "referral-api"

// Client talks to the remote referral service. Every call takes the caller's
// session explicitly; its token is forwarded as the bearer credential.
type Client struct {
	rest *rest.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rest: rest.NewClient(serviceName, baseURL, timeout)}
}

func NewClientWithTransport(t *rest.Client) *Client {
	return &Client{rest: t}
}

func token(s *domain.Session) string {
	if s == nil {
		return ""
	}
	return s.Token
}

func userPath(userID, suffix string) string {
	return "/api/referrals/user/" + url.PathEscape(userID) + suffix
}

func (c *Client) ListReferrals(ctx context.Context, s *domain.Session, userID string) ([]domain.Referral, error) {
	var out []domain.Referral
	if err := c.rest.Get(ctx, userPath(userID, ""), token(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReferralRequests returns the pre-conversion intake records.
func (c *Client) GetReferralRequests(ctx context.Context, s *domain.Session, userID string) ([]domain.ReferralRequest, error) {
	var out []domain.ReferralRequest
	if err := c.rest.Get(ctx, "/api/referrals/"+url.PathEscape(userID), token(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReferral fetches one referral. Deployments without the item endpoint
// answer 404, in which case the session user's list is scanned, then, for
// admins and owners, the lists of every member of their organizations.
func (c *Client) GetReferral(ctx context.Context, s *domain.Session, id string) (*domain.Referral, error) {
	var out domain.Referral
	err := c.rest.Get(ctx, "/api/referrals/item/"+url.PathEscape(id), token(s), &out)
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, rest.ErrNotFound) {
		return nil, err
	}

	ref, err := c.findReferral(ctx, s, s.UserID(), id)
	if ref != nil || err != nil {
		return ref, err
	}
	if role, _ := domain.ParseMemberRole(s.User.Role); role.Elevated() {
		ref, err = c.findInOrganizations(ctx, s, id)
		if ref != nil || err != nil {
			return ref, err
		}
	}
	return nil, fmt.Errorf("referral %s: %w", id, rest.ErrNotFound)
}

func (c *Client) findReferral(ctx context.Context, s *domain.Session, userID, id string) (*domain.Referral, error) {
	list, err := c.ListReferrals(ctx, s, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (c *Client) findInOrganizations(ctx context.Context, s *domain.Session, id string) (*domain.Referral, error) {
	orgs, err := c.ListOrganizations(ctx, s)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{s.UserID(): true}
	for _, org := range orgs {
		members, err := c.ListMembers(ctx, s, org.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if m.UserID == "" || seen[m.UserID] {
				continue
			}
			seen[m.UserID] = true
			ref, err := c.findReferral(ctx, s, m.UserID, id)
			if err != nil && !errors.Is(err, rest.ErrNotFound) {
				return nil, err
			}
			if ref != nil {
				return ref, nil
			}
		}
	}
	return nil, nil
}

func (c *Client) CreateReferral(ctx context.Context, s *domain.Session, in domain.CreateReferralInput) (*domain.Referral, error) {
	var out domain.Referral
	if err := c.rest.Post(ctx, "/api/referrals/", token(s), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus returns the updated referral when the service echoes it,
// nil otherwise.
func (c *Client) UpdateStatus(ctx context.Context, s *domain.Session, id string, status domain.ReferralStatus) (*domain.Referral, error) {
	var out domain.Referral
	path := "/api/referrals/" + url.PathEscape(id) + "/status"
	if err := c.rest.Put(ctx, path, token(s), domain.UpdateStatusRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, nil
	}
	return &out, nil
}

func (c *Client) GetReferrerStats(ctx context.Context, s *domain.Session, userID string) (*domain.ReferrerStats, error) {
	var out domain.ReferrerStats
	if err := c.rest.Get(ctx, userPath(userID, "/stats"), token(s), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCommissions(ctx context.Context, s *domain.Session, userID string) ([]domain.Referral, error) {
	var out []domain.Referral
	if err := c.rest.Get(ctx, userPath(userID, "/commission"), token(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMonthlyStats(ctx context.Context, s *domain.Session, userID string) (*domain.AgentStats, error) {
	var out domain.AgentStats
	if err := c.rest.Get(ctx, userPath(userID, "/monthly-stats"), token(s), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
