package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"whisperbox.backend/pkg/logger"
)

// Sender delivers verification codes to freshly registered accounts.
type Sender interface {
	SendVerificationCode(ctx context.Context, toEmail, username, code string) error
}

// NoopSender is used when no Resend API key is configured.
type NoopSender struct{}

func (s *NoopSender) SendVerificationCode(ctx context.Context, toEmail, username, code string) error {
	logger.Warn(ctx, "email sender not configured, skipping verification email")
	return nil
}

// ResendSender sends verification emails via the Resend REST API.
type ResendSender struct {
	from   string
	client *resend.Client
}

var sendEmail = func(client *resend.Client, params *resend.SendEmailRequest) error {
	_, err := client.Emails.Send(params)
	return err
}

// NewResendSender creates a Resend-backed sender
func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from address is required")
	}
	return &ResendSender{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// SendVerificationCode emails the 6-digit code; the caller treats a
// failure here as fatal for the registration request.
func (s *ResendSender) SendVerificationCode(ctx context.Context, toEmail, username, code string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Verification Code",
		Text:    fmt.Sprintf("Hello %s, your verification code is %s. It expires in 1 hour.", username, code),
		Html:    fmt.Sprintf("<p>Hello %s,</p><p>Your verification code is <strong>%s</strong>.</p><p>It expires in 1 hour.</p>", username, code),
	}

	if err := sendEmail(s.client, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
