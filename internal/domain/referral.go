package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Referral struct {
	ID                  string          `json:"id"`
	ReferrerID          string          `json:"referrerId"`
	ReferredName        string          `json:"referredName"`
	ReferredEmail       string          `json:"referredEmail"`
	ReferredPhoneNumber string          `json:"referredPhoneNumber,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	Status              ReferralStatus  `json:"status"`
	Commission          decimal.Decimal `json:"commission"`
	PotentialCommission decimal.Decimal `json:"potentialCommission"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

const maxNotesLength = 1000

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type CreateReferralInput struct {
	ReferrerID          string `json:"referrerId"`
	ReferredName        string `json:"referredName"`
	ReferredEmail       string `json:"referredEmail"`
	ReferredPhoneNumber string `json:"referredPhoneNumber,omitempty"`
	Notes               string `json:"notes,omitempty"`
}

// Normalize trims every field in place.
func (in *CreateReferralInput) Normalize() {
	in.ReferrerID = strings.TrimSpace(in.ReferrerID)
	in.ReferredName = strings.TrimSpace(in.ReferredName)
	in.ReferredEmail = strings.TrimSpace(in.ReferredEmail)
	in.ReferredPhoneNumber = strings.TrimSpace(in.ReferredPhoneNumber)
	in.Notes = strings.TrimSpace(in.Notes)
}

func (in CreateReferralInput) Validate() error {
	if strings.TrimSpace(in.ReferredName) == "" || strings.TrimSpace(in.ReferredEmail) == "" {
		return NewValidationError("", "Name and email are required")
	}
	if !ValidEmail(strings.TrimSpace(in.ReferredEmail)) {
		return NewValidationError("referredEmail", "Please enter a valid email address")
	}
	if len(in.Notes) > maxNotesLength {
		return NewValidationError("notes", "Notes too long")
	}
	if strings.TrimSpace(in.ReferrerID) == "" {
		return NewValidationError("referrerId", "Referral code is required")
	}
	return nil
}

type CreateReferralResult struct {
	Referral    *Referral `json:"referral"`
	FollowUpURL string    `json:"followUpUrl,omitempty"`
}

type UpdateStatusRequest struct {
	Status ReferralStatus `json:"status"`
}

// ReferralFilter mirrors the list pages' search box and status dropdown.
type ReferralFilter struct {
	Search string
	Status string // "all" or empty disables the status filter
	Since  time.Time
}

func FilterReferrals(referrals []Referral, f ReferralFilter) []Referral {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.ToLower(strings.TrimSpace(f.Status))
	out := make([]Referral, 0, len(referrals))
	for _, r := range referrals {
		if search != "" &&
			!strings.Contains(strings.ToLower(r.ReferredName), search) &&
			!strings.Contains(strings.ToLower(r.ID), search) {
			continue
		}
		if status != "" && status != "all" && strings.ToLower(string(r.Status)) != status {
			continue
		}
		if !f.Since.IsZero() && r.CreatedAt.Before(f.Since) {
			continue
		}
		out = append(out, r)
	}
	return out
}

type ReferrerStats struct {
	ActiveReferralsCount int             `json:"activeReferralsCount"`
	PotentialCommission  decimal.Decimal `json:"potentialCommission"`
	PendingReferrals     decimal.Decimal `json:"pendingReferrals"`
	TotalEarnings        decimal.Decimal `json:"totalEarnings"`
}

type AgentStats struct {
	SuccessRate    float64 `json:"successRate"`
	ConversionRate float64 `json:"conversionRate"`
}
