package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"travana-referral-dashboard/internal/cache"
	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
)

type ReferralOptions struct {
	Policy           domain.TransitionPolicy
	WhatsAppGroupURL string
}

type referralService struct {
	api   ReferralAPI
	cache QueryCache
	opts  ReferralOptions
}

func NewReferralService(api ReferralAPI, qc QueryCache, opts ReferralOptions) ReferralService {
	if !opts.Policy.Valid() {
		opts.Policy = domain.TransitionPermissive
	}
	return &referralService{api: api, cache: qc, opts: opts}
}

func authorize(s *domain.Session, userID string) error {
	if s == nil {
		return domain.ErrNoSession
	}
	if !s.CanActFor(userID) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *referralService) Statuses() []domain.StatusInfo {
	return domain.Statuses()
}

func (s *referralService) referrals(ctx context.Context, sess *domain.Session, userID string) ([]domain.Referral, error) {
	return cache.Load(ctx, s.cache, cache.ReferralsKey(userID), func(ctx context.Context) ([]domain.Referral, error) {
		return s.api.ListReferrals(ctx, sess, userID)
	})
}

func (s *referralService) commissions(ctx context.Context, sess *domain.Session, userID string) ([]domain.Referral, error) {
	return cache.Load(ctx, s.cache, cache.CommissionKey(userID), func(ctx context.Context) ([]domain.Referral, error) {
		return s.api.GetCommissions(ctx, sess, userID)
	})
}

func (s *referralService) ListReferrals(ctx context.Context, sess *domain.Session, userID string, f domain.ReferralFilter) ([]domain.Referral, error) {
	if err := authorize(sess, userID); err != nil {
		return nil, err
	}
	list, err := s.referrals(ctx, sess, userID)
	if err != nil {
		return nil, err
	}
	return domain.FilterReferrals(list, f), nil
}

func (s *referralService) ListReferralRequests(ctx context.Context, sess *domain.Session, userID string) ([]domain.ReferralRequest, error) {
	if err := authorize(sess, userID); err != nil {
		return nil, err
	}
	return cache.Load(ctx, s.cache, cache.RequestsKey(userID), func(ctx context.Context) ([]domain.ReferralRequest, error) {
		return s.api.GetReferralRequests(ctx, sess, userID)
	})
}

func (s *referralService) GetReferrerStats(ctx context.Context, sess *domain.Session, userID string) (*domain.ReferrerStats, error) {
	if err := authorize(sess, userID); err != nil {
		return nil, err
	}
	return cache.Load(ctx, s.cache, cache.StatsKey(userID), func(ctx context.Context) (*domain.ReferrerStats, error) {
		return s.api.GetReferrerStats(ctx, sess, userID)
	})
}

func (s *referralService) GetMonthlyStats(ctx context.Context, sess *domain.Session, userID string) (*domain.AgentStats, error) {
	if err := authorize(sess, userID); err != nil {
		return nil, err
	}
	return cache.Load(ctx, s.cache, cache.MonthlyKey(userID), func(ctx context.Context) (*domain.AgentStats, error) {
		return s.api.GetMonthlyStats(ctx, sess, userID)
	})
}

// GetCommissionReport summarizes every commission record of the referrer;
// the filter narrows only the returned rows, not the totals.
func (s *referralService) GetCommissionReport(ctx context.Context, sess *domain.Session, userID string, f domain.ReferralFilter) (*domain.CommissionReport, error) {
	if err := authorize(sess, userID); err != nil {
		return nil, err
	}
	list, err := s.commissions(ctx, sess, userID)
	if err != nil {
		return nil, err
	}
	report := domain.NewCommissionReport(list)
	report.Referrals = domain.FilterReferrals(report.Referrals, f)
	return &report, nil
}

func (s *referralService) SubmitReferral(ctx context.Context, sess *domain.Session, in domain.CreateReferralInput) (*domain.CreateReferralResult, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	in.Normalize()
	if in.ReferrerID == "" {
		in.ReferrerID = sess.UserID()
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !sess.CanActFor(in.ReferrerID) {
		return nil, domain.ErrForbidden
	}
	return s.create(ctx, sess, in)
}

// SubmitPublicReferral handles the unauthenticated intake form. The
// referrer comes from the link's ref parameter.
func (s *referralService) SubmitPublicReferral(ctx context.Context, ref string, in domain.CreateReferralInput) (*domain.CreateReferralResult, error) {
	in.ReferrerID = ref
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.create(ctx, nil, in)
}

func (s *referralService) create(ctx context.Context, sess *domain.Session, in domain.CreateReferralInput) (*domain.CreateReferralResult, error) {
	created, err := s.api.CreateReferral(ctx, sess, in)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create referral", "referrer_id", in.ReferrerID, "error", err)
		return nil, err
	}

	s.cache.Invalidate(cache.RequestsKey(in.ReferrerID), cache.ReferralsKey(in.ReferrerID))
	logger.InfoContext(ctx, "Referral created", "referrer_id", in.ReferrerID)

	return &domain.CreateReferralResult{Referral: created, FollowUpURL: s.opts.WhatsAppGroupURL}, nil
}

// UpdateStatus moves a referral to status. An undefined status is rejected
// before any request is sent. Under the forward-only policy the current
// status is fetched first; asking for the current status is a no-op.
// The affected cache keys are invalidated once, and only on success.
func (s *referralService) UpdateStatus(ctx context.Context, sess *domain.Session, referralID string, status domain.ReferralStatus) (*domain.Referral, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	if parsed, ok := domain.ParseReferralStatus(string(status)); ok {
		status = parsed
	}
	if err := s.opts.Policy.CheckTransition("", status); err != nil {
		return nil, err
	}

	var current *domain.Referral
	if s.opts.Policy == domain.TransitionForwardOnly {
		ref, err := s.api.GetReferral(ctx, sess, referralID)
		if err != nil {
			return nil, err
		}
		if ref.ReferrerID != "" && !sess.CanActFor(ref.ReferrerID) {
			return nil, domain.ErrForbidden
		}
		if ref.Status == status {
			return ref, nil
		}
		if err := s.opts.Policy.CheckTransition(ref.Status, status); err != nil {
			return nil, fmt.Errorf("%s to %s: %w", ref.Status, status, err)
		}
		current = ref
	}

	updated, err := s.api.UpdateStatus(ctx, sess, referralID, status)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update referral status", "referral_id", referralID, "status", status, "error", err)
		return nil, err
	}

	owners := []string{sess.UserID()}
	if updated != nil {
		owners = append(owners, updated.ReferrerID)
	} else if current != nil {
		owners = append(owners, current.ReferrerID)
	}
	s.cache.Invalidate(statusKeys(owners...)...)
	logger.InfoContext(ctx, "Referral status updated", "referral_id", referralID, "status", status)

	if updated == nil && current != nil {
		c := *current
		c.Status = status
		updated = &c
	}
	return updated, nil
}

// statusKeys lists the keys a status change affects for each distinct owner.
func statusKeys(owners ...string) []string {
	seen := make(map[string]bool, len(owners))
	var keys []string
	for _, id := range owners {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, cache.ReferralsKey(id), cache.StatsKey(id), cache.CommissionKey(id), cache.MonthlyKey(id))
	}
	return keys
}

// Dashboard loads stats, monthly rates and referrals concurrently. Any
// failure fails the whole page.
func (s *referralService) Dashboard(ctx context.Context, sess *domain.Session) (*domain.Dashboard, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	userID := sess.UserID()

	var (
		stats     *domain.ReferrerStats
		monthly   *domain.AgentStats
		referrals []domain.Referral
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.GetReferrerStats(gctx, sess, userID)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = s.GetMonthlyStats(gctx, sess, userID)
		return err
	})
	g.Go(func() error {
		var err error
		referrals, err = s.referrals(gctx, sess, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := domain.Summarize(referrals)
	d := &domain.Dashboard{
		User:            sess.User,
		Commission:      summary,
		Display:         summary.Formatted(),
		RecentReferrals: domain.RecentReferrals(referrals, domain.RecentReferralsLimit),
	}
	if stats != nil {
		d.Stats = *stats
	}
	if monthly != nil {
		d.Monthly = *monthly
	}
	return d, nil
}
