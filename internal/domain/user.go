package domain

import (
	"context"
	"strings"
	"time"
)

// User is the identity provider's profile of the signed-in referrer.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Role          string `json:"role"`
	PhoneNumber   string `json:"phoneNumber"`
	Image         string `json:"image,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

func (u User) GivenName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if parts := strings.Fields(u.Name); len(parts) > 0 {
		return parts[0]
	}
	return ""
}

func (u User) FamilyName() string {
	if u.LastName != "" {
		return u.LastName
	}
	if parts := strings.Fields(u.Name); len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return ""
}

func (u User) FullName() string {
	first, last := u.GivenName(), u.FamilyName()
	if first != "" && last != "" {
		return first + " " + last
	}
	if u.Name != "" {
		return u.Name
	}
	if first != "" {
		return first
	}
	return "User"
}

func (u User) Initials() string {
	first, last := u.GivenName(), u.FamilyName()
	switch {
	case first != "" && last != "":
		return strings.ToUpper(string([]rune(first)[0:1]) + string([]rune(last)[0:1]))
	case first != "":
		return strings.ToUpper(string([]rune(first)[0:1]))
	}
	return "U"
}

// Session is the explicit identity context handed to every operation that
// acts on behalf of a user.
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.User.ID
}

// CanActFor reports whether the session may read or mutate the referrer's data.
func (s *Session) CanActFor(referrerID string) bool {
	if s == nil {
		return false
	}
	if s.User.ID == referrerID {
		return true
	}
	role, _ := ParseMemberRole(s.User.Role)
	return role.Elevated()
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in SignInInput) Validate() error {
	if !ValidEmail(strings.TrimSpace(in.Email)) {
		return NewValidationError("email", "Please enter a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		return NewValidationError("password", "Password must be at least 6 characters")
	}
	return nil
}

const minPasswordLength = 6

type ChangePasswordInput struct {
	CurrentPassword     string `json:"oldPassword"`
	NewPassword         string `json:"newPassword"`
	ConfirmPassword     string `json:"confirmPassword"`
	RevokeOtherSessions bool   `json:"revokeOtherSessions"`
}

func (in ChangePasswordInput) Validate() error {
	if in.CurrentPassword == "" {
		return NewValidationError("oldPassword", "Current password is required")
	}
	if len(in.NewPassword) < minPasswordLength {
		return NewValidationError("newPassword", "Password must be at least 6 characters")
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.NewPassword {
		return NewValidationError("confirmPassword", "Passwords don't match")
	}
	return nil
}

type UpdateProfileInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (in UpdateProfileInput) Validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return NewValidationError("firstName", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return NewValidationError("lastName", "Last name is required")
	}
	return nil
}

// AccountRequest is the sign-up request reviewed by the referral service.
type AccountRequest struct {
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        MemberRole `json:"role"`
	OrgName     string     `json:"orgName,omitempty"`
}

func (in AccountRequest) Validate() error {
	if !ValidEmail(strings.TrimSpace(in.Email)) {
		return NewValidationError("email", "Please enter a valid email address")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return NewValidationError("firstName", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return NewValidationError("lastName", "Last name is required")
	}
	role, ok := ParseMemberRole(string(in.Role))
	if !ok {
		return NewValidationError("role", "Role must be one of member, admin, owner")
	}
	if role == RoleOwner && strings.TrimSpace(in.OrgName) == "" {
		return NewValidationError("orgName", "Organization name is required for owner role")
	}
	return nil
}
