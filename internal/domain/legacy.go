package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ReferralRequestStatus string

const (
	RequestStatusPending  ReferralRequestStatus = "PENDING"
	RequestStatusApproved ReferralRequestStatus = "APPROVED"
	RequestStatusRejected ReferralRequestStatus = "REJECTED"
)

// ReferralRequest is the pre-conversion intake record still returned by
// GET /api/referrals/:id.
type ReferralRequest struct {
	ID                  string                `json:"id"`
	ReferrerID          string                `json:"referrerId"`
	ReferredName        string                `json:"referredName"`
	ReferredEmail       string                `json:"referredEmail"`
	ReferredPhoneNumber string                `json:"referredPhoneNumber,omitempty"`
	ReferredStatus      ReferralRequestStatus `json:"referredStatus"`
	Notes               string                `json:"notes,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

func (r ReferralRequest) ToReferral() Referral {
	var status ReferralStatus
	switch ReferralRequestStatus(strings.ToUpper(string(r.ReferredStatus))) {
	case RequestStatusApproved:
		status = StatusBooked
	case RequestStatusRejected:
		status = StatusLost
	default:
		status = StatusEnquiry
	}
	updated := r.UpdatedAt
	if updated.IsZero() {
		updated = r.CreatedAt
	}
	return Referral{
		ID:                  r.ID,
		ReferrerID:          r.ReferrerID,
		ReferredName:        r.ReferredName,
		ReferredEmail:       r.ReferredEmail,
		ReferredPhoneNumber: r.ReferredPhoneNumber,
		Notes:               r.Notes,
		Status:              status,
		Commission:          decimal.Zero,
		PotentialCommission: decimal.Zero,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           updated,
	}
}

func ReferralRequestsToReferrals(reqs []ReferralRequest) []Referral {
	out := make([]Referral, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.ToReferral())
	}
	return out
}

// UnmarshalJSON accepts the older field names (refereeName, refereeEmail,
// refereePhone, clientName) and normalizes status spellings.
func (r *Referral) UnmarshalJSON(data []byte) error {
	type plain Referral
	aux := struct {
		*plain
		Status      string `json:"status"`
		RefereeName string `json:"refereeName"`
		RefereeMail string `json:"refereeEmail"`
		RefereeTel  string `json:"refereePhone"`
		ClientName  string `json:"clientName"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s, ok := ParseReferralStatus(aux.Status); ok {
		r.Status = s
	} else {
		r.Status = ReferralStatus(aux.Status)
	}
	if r.ReferredName == "" {
		r.ReferredName = firstNonEmpty(aux.RefereeName, aux.ClientName)
	}
	if r.ReferredEmail == "" {
		r.ReferredEmail = aux.RefereeMail
	}
	if r.ReferredPhoneNumber == "" {
		r.ReferredPhoneNumber = aux.RefereeTel
	}
	return nil
}

// UnmarshalJSON tolerates the service's "potentialComission" spelling.
func (s *ReferrerStats) UnmarshalJSON(data []byte) error {
	type plain ReferrerStats
	aux := struct {
		*plain
		Misspelled *decimal.Decimal `json:"potentialComission"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Misspelled != nil && s.PotentialCommission.IsZero() {
		s.PotentialCommission = *aux.Misspelled
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
