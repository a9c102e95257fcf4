package domain

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
	InvitationCanceled InvitationStatus = "canceled"
)

type Invitation struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organizationId"`
	Email          string           `json:"email"`
	Role           MemberRole       `json:"role"`
	Status         InvitationStatus `json:"status"`
	InviterID      string           `json:"inviterId"`
	ExpiresAt      time.Time        `json:"expiresAt"`
}

func (i Invitation) Pending(now time.Time) bool {
	return i.Status == InvitationPending && (i.ExpiresAt.IsZero() || i.ExpiresAt.After(now))
}

func PendingInvitations(invites []Invitation, now time.Time) []Invitation {
	out := make([]Invitation, 0, len(invites))
	for _, inv := range invites {
		if inv.Pending(now) {
			out = append(out, inv)
		}
	}
	return out
}
