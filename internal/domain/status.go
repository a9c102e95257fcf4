package domain

import "strings"

type ReferralStatus string

const (
	StatusEnquiry          ReferralStatus = "enquiry"
	StatusQuoteInProgress  ReferralStatus = "quote_in_progress"
	StatusQuoteReady       ReferralStatus = "quote_ready"
	StatusAwaitingDecision ReferralStatus = "awaiting_decision"
	StatusBooked           ReferralStatus = "booked"
	StatusLost             ReferralStatus = "lost"
)

// StatusCategory groups statuses for badge colouring.
type StatusCategory string

const (
	CategoryPending StatusCategory = "pending"
	CategoryActive  StatusCategory = "active"
	CategorySuccess StatusCategory = "success"
	CategoryFailure StatusCategory = "failure"
	CategoryUnknown StatusCategory = "unknown"
)

const UnknownStatusLabel = "Unknown"

type StatusInfo struct {
	Status      ReferralStatus `json:"status"`
	Label       string         `json:"label"`
	ShortLabel  string         `json:"shortLabel"`
	Description string         `json:"description"`
	Category    StatusCategory `json:"category"`
	Step        int            `json:"step"` // 0 for unknown; terminal states share the last step
	Terminal    bool           `json:"terminal"`
}

var statusTable = []StatusInfo{
	{Status: StatusEnquiry, Label: "Enquiry", Description: "Initial interest received", Category: CategoryPending, Step: 1},
	{Status: StatusQuoteInProgress, Label: "Quote In Progress", Description: "Preparing custom quote", Category: CategoryActive, Step: 2},
	{Status: StatusQuoteReady, Label: "Quote Ready", Description: "Quote sent to customer", Category: CategoryActive, Step: 3},
	{Status: StatusAwaitingDecision, Label: "Awaiting Decision", Description: "Customer reviewing quote", Category: CategoryActive, Step: 4},
	{Status: StatusBooked, Label: "Booked", Description: "Trip confirmed & booked", Category: CategorySuccess, Step: 5, Terminal: true},
	{Status: StatusLost, Label: "Lost", Description: "Customer declined", Category: CategoryFailure, Step: 5, Terminal: true},
}

var statusIndex = func() map[ReferralStatus]StatusInfo {
	idx := make(map[ReferralStatus]StatusInfo, len(statusTable))
	for i := range statusTable {
		statusTable[i].ShortLabel = strings.Fields(statusTable[i].Label)[0]
		idx[statusTable[i].Status] = statusTable[i]
	}
	return idx
}()

// Statuses returns the lifecycle in progression order, terminal states last.
func Statuses() []StatusInfo {
	out := make([]StatusInfo, len(statusTable))
	copy(out, statusTable)
	return out
}

// ResolveStatus never fails: undefined values get the Unknown entry.
func ResolveStatus(s ReferralStatus) StatusInfo {
	if info, ok := statusIndex[s]; ok {
		return info
	}
	return StatusInfo{
		Status:     s,
		Label:      UnknownStatusLabel,
		ShortLabel: UnknownStatusLabel,
		Category:   CategoryUnknown,
	}
}

func ResolveStatusLabel(s ReferralStatus) string {
	return ResolveStatus(s).Label
}

func (s ReferralStatus) Valid() bool {
	_, ok := statusIndex[s]
	return ok
}

func (s ReferralStatus) Terminal() bool {
	return ResolveStatus(s).Terminal
}

// ParseReferralStatus accepts the wire value in any case and with spaces
// instead of underscores ("Quote Ready").
func ParseReferralStatus(raw string) (ReferralStatus, bool) {
	s := ReferralStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_"))
	if s == "in_booking" {
		s = StatusBooked
	}
	return s, s.Valid()
}

// IsStageCompleted drives the progress stepper. Only the four progress
// stages can be completed; a terminal current state completes all of them.
func IsStageCompleted(current, stage ReferralStatus) bool {
	c, s := ResolveStatus(current), ResolveStatus(stage)
	if s.Step == 0 || s.Terminal || c.Step == 0 {
		return false
	}
	return c.Step > s.Step
}

type TransitionPolicy string

const (
	TransitionPermissive  TransitionPolicy = "permissive"
	TransitionForwardOnly TransitionPolicy = "forward_only"
)

func (p TransitionPolicy) Valid() bool {
	return p == TransitionPermissive || p == TransitionForwardOnly
}

// CheckTransition reports whether from -> to is allowed under the policy.
// The target must always be a defined status.
func (p TransitionPolicy) CheckTransition(from, to ReferralStatus) error {
	if !to.Valid() {
		return &ValidationError{Field: "status", Message: "Unknown referral status"}
	}
	if p != TransitionForwardOnly || !from.Valid() {
		return nil
	}
	if from.Terminal() {
		return ErrInvalidTransition
	}
	if ResolveStatus(to).Step <= ResolveStatus(from).Step {
		return ErrInvalidTransition
	}
	return nil
}
