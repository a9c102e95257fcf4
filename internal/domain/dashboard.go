package domain

import "sort"

const RecentReferralsLimit = 5

// Dashboard is the home page payload, loaded in one round trip.
type Dashboard struct {
	User            User              `json:"user"`
	Stats           ReferrerStats     `json:"stats"`
	Monthly         AgentStats        `json:"monthly"`
	Commission      CommissionSummary `json:"commission"`
	Display         map[string]string `json:"display"`
	RecentReferrals []Referral        `json:"recentReferrals"`
}

// RecentReferrals returns up to limit referrals, newest first.
func RecentReferrals(referrals []Referral, limit int) []Referral {
	out := make([]Referral, len(referrals))
	copy(out, referrals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
