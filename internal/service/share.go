package service

import (
	"context"
	"errors"
	"strings"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
	"travana-referral-dashboard/internal/repository"
)

type shareService struct {
	repo    repository.ShareMessageRepository
	email   EmailService
	baseURL string
}

// NewShareService builds referral links against baseURL, the public
// dashboard origin.
func NewShareService(repo repository.ShareMessageRepository, email EmailService, baseURL string) ShareService {
	return &shareService{repo: repo, email: email, baseURL: baseURL}
}

func (s *shareService) ListShareMessages(ctx context.Context, sess *domain.Session) ([]domain.ShareMessage, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	return s.repo.ListByUser(ctx, sess.UserID())
}

// SaveShareMessage creates or replaces the user's template for the platform.
func (s *shareService) SaveShareMessage(ctx context.Context, sess *domain.Session, in domain.ShareMessageInput) (*domain.ShareMessage, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	in.Platform = domain.Platform(strings.ToLower(strings.TrimSpace(string(in.Platform))))
	if err := in.Validate(); err != nil {
		return nil, err
	}

	msg := &domain.ShareMessage{
		UserID:   sess.UserID(),
		Platform: in.Platform,
		Message:  in.Message,
		IsActive: true,
	}
	if in.Platform.HasSubject() {
		msg.Subject = strings.TrimSpace(in.Subject)
	}
	if in.IsActive != nil {
		msg.IsActive = *in.IsActive
	}

	if err := s.repo.Upsert(ctx, msg); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Share message saved", "user_id", msg.UserID, "platform", msg.Platform)
	return msg, nil
}

func (s *shareService) SetShareMessageActive(ctx context.Context, sess *domain.Session, platform domain.Platform, active bool) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	if !platform.Valid() {
		return domain.NewValidationError("platform", "Platform must be one of email, whatsapp, linkedin")
	}
	return s.repo.SetActive(ctx, sess.UserID(), platform, active)
}

// ResetShareMessage drops the custom template so the default applies again.
// Resetting a platform that has no custom template is not an error.
func (s *shareService) ResetShareMessage(ctx context.Context, sess *domain.Session, platform domain.Platform) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	if !platform.Valid() {
		return domain.NewValidationError("platform", "Platform must be one of email, whatsapp, linkedin")
	}
	err := s.repo.Delete(ctx, sess.UserID(), platform)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func (s *shareService) PreviewShareMessage(ctx context.Context, sess *domain.Session, platform domain.Platform) (*domain.SharePreview, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	if !platform.Valid() {
		return nil, domain.NewValidationError("platform", "Platform must be one of email, whatsapp, linkedin")
	}
	msgs, err := s.repo.ListByUser(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}

	link := domain.ReferralURL(s.baseURL, sess.UserID())
	tmpl, custom := domain.ActiveTemplate(platform, msgs)
	preview := &domain.SharePreview{
		Platform: platform,
		Message:  domain.ProcessMessage(tmpl.Message, link),
		Custom:   custom,
	}
	if platform.HasSubject() {
		preview.Subject = domain.ProcessMessage(tmpl.Subject, link)
	}
	return preview, nil
}

func (s *shareService) ShareLinks(ctx context.Context, sess *domain.Session) (*domain.ShareLinks, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	msgs, err := s.repo.ListByUser(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}
	links := domain.BuildShareLinks(domain.ReferralURL(s.baseURL, sess.UserID()), msgs)
	return &links, nil
}

// SendShareEmail mails the processed email template to one recipient with
// the referrer as reply-to.
func (s *shareService) SendShareEmail(ctx context.Context, sess *domain.Session, to string) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	to = strings.TrimSpace(to)
	if !domain.ValidEmail(to) {
		return domain.NewValidationError("to", "Please enter a valid email address")
	}

	preview, err := s.PreviewShareMessage(ctx, sess, domain.PlatformEmail)
	if err != nil {
		return err
	}

	err = s.email.SendShareEmail(ctx, domain.OutboundEmail{
		To:        to,
		ReplyTo:   sess.User.Email,
		ReplyName: sess.User.FullName(),
		Subject:   preview.Subject,
		Body:      preview.Message,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send share email", "user_id", sess.UserID(), "error", err)
		return err
	}
	logger.InfoContext(ctx, "Share email sent", "user_id", sess.UserID())
	return nil
}
