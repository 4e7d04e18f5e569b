package mail

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"
)

// Mailer sends transactional email. Services depend on this interface so
// tests can swap in a recorder.
type Mailer interface {
	SendVerification(ctx context.Context, to, token string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
}

// SMTPMailer delivers over SMTP. Construct one per process; the underlying
// client dials per send.
type SMTPMailer struct {
	client  *gomail.Client
	from    string
	baseURL string
}

func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPMailer{
		client:  client,
		from:    cfg.From,
		baseURL: cfg.BaseURL,
	}, nil
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, token string) error {
	verifyURL := fmt.Sprintf("%s/api/auth/verify?token=%s", m.baseURL, url.QueryEscape(token))

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("Verify your email")
	msg.SetBodyString(gomail.TypeTextHTML, verificationBody(verifyURL))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func verificationBody(verifyURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #111827;">
  <h2>Verify your email</h2>
  <p>Please confirm your email address to activate your account.</p>
  <p><a href="%[1]s" style="display:inline-block;padding:12px 20px;background:#2563EB;color:#fff;text-decoration:none;border-radius:6px;">Verify Email</a></p>
  <p>If the button does not work, copy and paste this URL into your browser:</p>
  <p style="word-break:break-all;color:#2563EB">%[1]s</p>
  <p>This link will expire in 24 hours.</p>
</div>`, verifyURL)
}

// DisabledMailer stands in when SMTP is not configured: it logs the token
// instead of sending, which keeps local development out of the mail path.
type DisabledMailer struct{}

func (DisabledMailer) SendVerification(ctx context.Context, to, token string) error {
	log.Warn().Str("to", to).Msg("smtp not configured, verification email not sent")
	return nil
}
