package domain

import (
	"net/url"
	"strings"
	"time"
)

type Platform string

const (
	PlatformEmail    Platform = "email"
	PlatformWhatsApp Platform = "whatsapp"
	PlatformLinkedIn Platform = "linkedin"
)

// ReferralLinkPlaceholder is replaced by the referrer's public intake URL.
const ReferralLinkPlaceholder = "[REFERRAL_LINK]"

const (
	maxSubjectLength = 200
	maxMessageLength = 1000
)

var Platforms = []Platform{PlatformEmail, PlatformWhatsApp, PlatformLinkedIn}

func (p Platform) Valid() bool {
	switch p {
	case PlatformEmail, PlatformWhatsApp, PlatformLinkedIn:
		return true
	}
	return false
}

func (p Platform) HasSubject() bool {
	return p == PlatformEmail
}

type ShareMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Platform  Platform  `json:"platform"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ShareMessageInput struct {
	Platform Platform `json:"platform"`
	Subject  string   `json:"subject,omitempty"`
	Message  string   `json:"message"`
	IsActive *bool    `json:"isActive,omitempty"`
}

func (in ShareMessageInput) Validate() error {
	if !in.Platform.Valid() {
		return NewValidationError("platform", "Platform must be one of email, whatsapp, linkedin")
	}
	if strings.TrimSpace(in.Message) == "" {
		return NewValidationError("message", "Message is required")
	}
	if len([]rune(in.Message)) > maxMessageLength {
		return NewValidationError("message", "Message too long")
	}
	if len([]rune(in.Subject)) > maxSubjectLength {
		return NewValidationError("subject", "Subject too long")
	}
	return nil
}

type ShareTemplate struct {
	Subject string
	Message string
}

var defaultTemplates = map[Platform]ShareTemplate{
	PlatformEmail: {
		Subject: "Join Travana - Premium Travel Services",
		Message: "Hi there!\n\nI wanted to share Travana with you - they provide amazing travel services and I think you'd love what they offer.\n\nUse my referral link to get started: [REFERRAL_LINK]\n\nBest regards!",
	},
	PlatformWhatsApp: {
		Message: "Hi! 👋\n\nI wanted to share Travana with you - they provide amazing travel services and I think you'd love what they offer!\n\nUse my referral link to get started: [REFERRAL_LINK]\n\nLet me know if you have any questions! ✈️",
	},
	PlatformLinkedIn: {
		Message: "Check out Travana's premium travel services! [REFERRAL_LINK]",
	},
}

func DefaultTemplate(p Platform) ShareTemplate {
	return defaultTemplates[p]
}

// ProcessMessage substitutes every placeholder occurrence with link.
func ProcessMessage(template, link string) string {
	return strings.ReplaceAll(template, ReferralLinkPlaceholder, link)
}

// ReferralURL is the public intake page attributed to the referrer.
func ReferralURL(baseURL, referrerID string) string {
	return strings.TrimRight(baseURL, "/") + "/public-client-request?ref=" + url.QueryEscape(referrerID)
}

// ActiveTemplate picks the user's active custom message for the platform,
// else the built-in default.
func ActiveTemplate(p Platform, messages []ShareMessage) (ShareTemplate, bool) {
	for _, m := range messages {
		if m.Platform == p && m.IsActive {
			t := ShareTemplate{Message: m.Message}
			if p.HasSubject() {
				t.Subject = m.Subject
			}
			if t.Subject == "" {
				t.Subject = defaultTemplates[p].Subject
			}
			return t, true
		}
	}
	return defaultTemplates[p], false
}

type SharePreview struct {
	Platform Platform `json:"platform"`
	Subject  string   `json:"subject,omitempty"`
	Message  string   `json:"message"`
	Custom   bool     `json:"custom"`
}

type ShareLinks struct {
	ReferralURL string `json:"referralUrl"`
	Email       string `json:"email"`
	WhatsApp    string `json:"whatsapp"`
	LinkedIn    string `json:"linkedin"`
}

// BuildShareLinks renders the mailto:, wa.me and LinkedIn share intents.
func BuildShareLinks(referralURL string, messages []ShareMessage) ShareLinks {
	email, _ := ActiveTemplate(PlatformEmail, messages)
	whatsapp, _ := ActiveTemplate(PlatformWhatsApp, messages)
	linkedin, _ := ActiveTemplate(PlatformLinkedIn, messages)

	return ShareLinks{
		ReferralURL: referralURL,
		Email: "mailto:?subject=" + EncodeURIComponent(ProcessMessage(email.Subject, referralURL)) +
			"&body=" + EncodeURIComponent(ProcessMessage(email.Message, referralURL)),
		WhatsApp: "https://wa.me/?text=" + EncodeURIComponent(ProcessMessage(whatsapp.Message, referralURL)),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + EncodeURIComponent(referralURL) +
			"&summary=" + EncodeURIComponent(ProcessMessage(linkedin.Message, referralURL)),
	}
}

// EncodeURIComponent escapes like the browser function of the same name:
// spaces become %20 and the marks -_.!~*'() stay literal.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	r := strings.NewReplacer("%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*", "%7E", "~")
	return r.Replace(escaped)
}

// OutboundEmail is a processed share message addressed to one recipient.
type OutboundEmail struct {
	To        string
	ReplyTo   string
	ReplyName string
	Subject   string
	Body      string
}
