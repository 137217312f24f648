// Package notification sends booking and payment confirmation emails.
// Delivery is best-effort: a failed send is logged and retried once,
// never surfaced to the request that triggered it.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// EmailSender delivers a rendered message. Production wires an SMTP or
// provider-backed implementation; without one the mailer logs instead.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// LogSender writes messages to the log instead of delivering them. It
// is the default when no mail provider is configured, so development
// environments see exactly what would have been sent.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendEmail(_ context.Context, to, subject, body string) error {
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email (log-only delivery)")
	return nil
}

// Mailer renders and sends the portal's confirmation emails.
type Mailer struct {
	sender EmailSender
	log    zerolog.Logger
}

func NewMailer(sender EmailSender, log zerolog.Logger) *Mailer {
	return &Mailer{sender: sender, log: log}
}

// BookingConfirmed emails the patient that their appointment is booked.
func (m *Mailer) BookingConfirmed(ctx context.Context, patient, treatment, date, slot string) {
	subject := fmt.Sprintf("Your appointment for %s is confirmed", treatment)
	body := fmt.Sprintf(
		"Hello,\n\nYour appointment for %s on %s at %s is confirmed.\n\nDoctors Portal",
		treatment, date, slot,
	)
	m.deliver(ctx, patient, subject, body)
}

// PaymentReceived emails the patient a payment receipt.
func (m *Mailer) PaymentReceived(ctx context.Context, patient, treatment, transactionID string) {
	subject := fmt.Sprintf("Payment received for %s", treatment)
	body := fmt.Sprintf(
		"Hello,\n\nWe received your payment for %s.\nTransaction reference: %s\n\nDoctors Portal",
		treatment, transactionID,
	)
	m.deliver(ctx, patient, subject, body)
}

// deliver sends with a single retry. The caller's request must not
// block on or fail because of mail delivery.
func (m *Mailer) deliver(ctx context.Context, to, subject, body string) {
	err := m.sender.SendEmail(ctx, to, subject, body)
	if err == nil {
		return
	}
	m.log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("email send failed, retrying")

	time.Sleep(500 * time.Millisecond)
	if err := m.sender.SendEmail(ctx, to, subject, body); err != nil {
		m.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("email send failed")
	}
}
