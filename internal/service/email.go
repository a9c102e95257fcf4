package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
)

var ErrEmailDisabled = errors.New("email delivery is not configured")

// mailSender is the part of *sendgrid.Client used here.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewEmailService sends through SendGrid. Without an API key every send
// fails with ErrEmailDisabled.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	var client mailSender
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return newEmailService(client, fromEmail, fromName)
}

func newEmailService(client mailSender, fromEmail, fromName string) *emailService {
	return &emailService{client: client, fromEmail: fromEmail, fromName: fromName}
}

func (s *emailService) SendShareEmail(ctx context.Context, msg domain.OutboundEmail) error {
	if s.client == nil || s.fromEmail == "" {
		return ErrEmailDisabled
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", msg.To)
	htmlContent := "<p>" + strings.ReplaceAll(html.EscapeString(msg.Body), "\n", "<br>") + "</p>"

	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, htmlContent)
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail(msg.ReplyName, msg.ReplyTo))
	}

	logger.ExternalServiceCall("sendgrid", "send")
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", 0, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", response.StatusCode, err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", response.StatusCode, nil)
	return nil
}
