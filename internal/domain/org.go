package domain

import (
	"strings"
	"time"
)

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Logo      string    `json:"logo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleAdmin  MemberRole = "admin"
	RoleOwner  MemberRole = "owner"
)

func ParseMemberRole(raw string) (MemberRole, bool) {
	r := MemberRole(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RoleMember, RoleAdmin, RoleOwner:
		return r, true
	}
	return r, false
}

// Elevated roles may read other referrers' dashboards within the org.
func (r MemberRole) Elevated() bool {
	return r == RoleAdmin || r == RoleOwner
}

type MemberUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

type Member struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	UserID         string     `json:"userId"`
	Role           MemberRole `json:"role"`
	CreatedAt      time.Time  `json:"createdAt"`
	User           MemberUser `json:"user"`
}

type InviteMemberInput struct {
	Email          string     `json:"email"`
	Role           MemberRole `json:"role"`
	OrganizationID string     `json:"organizationId"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	ContactNumber  string     `json:"contactNumber"`
}

func (in *InviteMemberInput) Validate() error {
	in.Email = strings.TrimSpace(in.Email)
	if !ValidEmail(in.Email) {
		return NewValidationError("email", "Please enter a valid email address")
	}
	if in.Role == "" {
		in.Role = RoleMember
	}
	role, ok := ParseMemberRole(string(in.Role))
	if !ok {
		return NewValidationError("role", "Role must be one of member, admin, owner")
	}
	in.Role = role
	return nil
}
