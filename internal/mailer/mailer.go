package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Mailer sends account-lifecycle emails. Callers treat dispatch as
// best-effort: a failed send is logged, never retried.
type Mailer interface {
	SendVerificationEmail(email, token string) error
	SendPasswordResetEmail(email, token string) error
}

// LogMailer writes the email content to the structured log instead of
// talking to an SMTP relay. Links are built against the public app URL.
type LogMailer struct {
	appURL string
	log    zerolog.Logger
}

// NewLogMailer builds a log-backed mailer.
func NewLogMailer(appURL string, log zerolog.Logger) *LogMailer {
	return &LogMailer{appURL: appURL, log: log}
}

// SendVerificationEmail logs the verification mail with its link.
func (m *LogMailer) SendVerificationEmail(email, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify/%s", m.appURL, token)
	m.log.Info().
		Str("to", email).
		Str("link", link).
		Str("subject", "Verify your email for HealthHub").
		Msg("sending verification email")
	return nil
}

// SendPasswordResetEmail logs the password-reset mail with its link.
func (m *LogMailer) SendPasswordResetEmail(email, token string) error {
	link := fmt.Sprintf("%s/api/auth/reset-password/%s", m.appURL, token)
	m.log.Info().
		Str("to", email).
		Str("link", link).
		Str("subject", "Reset your HealthHub password").
		Msg("sending password reset email")
	return nil
}
