package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"car-rental/pkg/utils"
)

// Sender delivers transactional email. Implemented by the SendGrid client;
// tests substitute a recording fake.
type Sender interface {
	Send(toName, toEmail, subject, plainText, htmlContent string) error
}

type sendgridMailer struct {
	apiKey    string
	fromName  string
	fromEmail string
	log       *zap.Logger
}

func NewSendGridMailer(config utils.EmailConfig, log *zap.Logger) Sender {
	return &sendgridMailer{
		apiKey:    config.APIKey,
		fromName:  config.FromName,
		fromEmail: config.FromEmail,
		log:       log.With(zap.String("component", "mailer")),
	}
}

func (m *sendgridMailer) Send(toName, toEmail, subject, plainText, htmlContent string) error {
	if m.apiKey == "" {
		m.log.Warn("SendGrid API key not configured, skipping email",
			zap.String("to", toEmail),
			zap.String("subject", subject),
		)
		return fmt.Errorf("sendgrid api key not configured")
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", toEmail),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send email: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		m.log.Error("SendGrid rejected email",
			zap.Int("status", response.StatusCode),
			zap.String("to", toEmail),
			zap.String("body", response.Body),
		)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	m.log.Info("Email sent",
		zap.String("to", toEmail),
		zap.String("subject", subject),
	)
	return nil
}
