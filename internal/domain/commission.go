package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"travana-referral-dashboard/internal/utils"
)

// CommissionSummary holds the totals shown on the commissions page.
// Amounts are absolute GBP values.
type CommissionSummary struct {
	Total       decimal.Decimal `json:"totalCommission"`
	Paid        decimal.Decimal `json:"paidCommission"`
	Pending     decimal.Decimal `json:"pendingCommission"`
	Potential   decimal.Decimal `json:"potentialCommission"`
	Count       int             `json:"count"`
	BookedCount int             `json:"bookedCount"`
}

// Summarize computes the commission totals for a referrer's referrals.
// Paid counts booked referrals only, so Paid+Pending always equals Total.
func Summarize(referrals []Referral) CommissionSummary {
	sum := CommissionSummary{
		Total:     decimal.Zero,
		Paid:      decimal.Zero,
		Potential: decimal.Zero,
	}
	for _, r := range referrals {
		sum.Count++
		sum.Total = sum.Total.Add(r.Commission)
		if r.Status == StatusBooked {
			sum.BookedCount++
			sum.Paid = sum.Paid.Add(r.Commission)
		}
		if !r.Status.Terminal() {
			sum.Potential = sum.Potential.Add(r.PotentialCommission)
		}
	}
	sum.Pending = sum.Total.Sub(sum.Paid)
	return sum
}

// Formatted returns the display strings for the three headline figures.
func (s CommissionSummary) Formatted() map[string]string {
	return map[string]string{
		"totalCommission":     utils.FormatGBP(s.Total),
		"paidCommission":      utils.FormatGBP(s.Paid),
		"pendingCommission":   utils.FormatGBP(s.Pending),
		"potentialCommission": utils.FormatGBP(s.Potential),
	}
}

type CommissionReport struct {
	Referrals []Referral        `json:"referrals"`
	Summary   CommissionSummary `json:"summary"`
	Display   map[string]string `json:"display"`
}

func NewCommissionReport(referrals []Referral) CommissionReport {
	if referrals == nil {
		referrals = []Referral{}
	}
	s := Summarize(referrals)
	return CommissionReport{Referrals: referrals, Summary: s, Display: s.Formatted()}
}

type LegacyCommissionStatus string

const (
	LegacyCommissionPending LegacyCommissionStatus = "pending"
	LegacyCommissionPaid    LegacyCommissionStatus = "paid"
)

// LegacyCommission is the standalone commission row of the earlier API.
type LegacyCommission struct {
	ID         string                 `json:"id"`
	ReferralID string                 `json:"referralId"`
	Amount     string                 `json:"amount"`
	Status     LegacyCommissionStatus `json:"status"`
	PaidDate   *time.Time             `json:"paidDate,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

// MergeCommissions folds legacy commission rows into the embedded
// Commission field. Rows for several commissions on one referral are summed.
// Rows that name no known referral, or carry an unparsable amount, are
// returned as orphans and left out of the totals.
func MergeCommissions(referrals []Referral, commissions []LegacyCommission) ([]Referral, []LegacyCommission) {
	out := make([]Referral, len(referrals))
	copy(out, referrals)

	pos := make(map[string]int, len(out))
	seen := make(map[string]bool, len(out))
	for i, r := range out {
		pos[r.ID] = i
	}

	var orphans []LegacyCommission
	for _, c := range commissions {
		i, ok := pos[c.ReferralID]
		if !ok {
			orphans = append(orphans, c)
			continue
		}
		amount, err := utils.ParseAmount(c.Amount)
		if err != nil {
			orphans = append(orphans, c)
			continue
		}
		if !seen[c.ReferralID] {
			out[i].Commission = decimal.Zero
			seen[c.ReferralID] = true
		}
		out[i].Commission = out[i].Commission.Add(amount)
	}
	return out, orphans
}
