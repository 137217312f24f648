package notification

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type recordingSender struct {
	mu       sync.Mutex
	sent     []string
	failures int
}

func (r *recordingSender) SendEmail(_ context.Context, to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failures > 0 {
		r.failures--
		return errors.New("smtp unavailable")
	}
	r.sent = append(r.sent, to+"|"+subject+"|"+body)
	return nil
}

func TestBookingConfirmed(t *testing.T) {
	sender := &recordingSender{}
	m := NewMailer(sender, zerolog.Nop())

	m.BookingConfirmed(context.Background(), "a@x.com", "Cavity Filling", "May 16, 2022", "10am")

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	for _, want := range []string{"a@x.com", "Cavity Filling", "May 16, 2022", "10am"} {
		if !strings.Contains(msg, want) {
			t.Errorf("email missing %q: %s", want, msg)
		}
	}
}

func TestPaymentReceived(t *testing.T) {
	sender := &recordingSender{}
	m := NewMailer(sender, zerolog.Nop())

	m.PaymentReceived(context.Background(), "a@x.com", "Cavity Filling", "txn_123")

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "txn_123") {
		t.Errorf("receipt missing transaction reference: %s", sender.sent[0])
	}
}

func TestDeliver_RetriesOnce(t *testing.T) {
	sender := &recordingSender{failures: 1}
	m := NewMailer(sender, zerolog.Nop())

	m.BookingConfirmed(context.Background(), "a@x.com", "Cavity Filling", "May 16, 2022", "10am")

	if len(sender.sent) != 1 {
		t.Errorf("expected retry to deliver the email, got %d sent", len(sender.sent))
	}
}

func TestDeliver_GivesUpAfterRetry(t *testing.T) {
	sender := &recordingSender{failures: 2}
	m := NewMailer(sender, zerolog.Nop())

	m.BookingConfirmed(context.Background(), "a@x.com", "Cavity Filling", "May 16, 2022", "10am")

	if len(sender.sent) != 0 {
		t.Errorf("expected no delivery after two failures, got %d", len(sender.sent))
	}
}

func TestLogSender(t *testing.T) {
	var buf strings.Builder
	s := NewLogSender(zerolog.New(&buf))

	if err := s.SendEmail(context.Background(), "a@x.com", "subject", "body"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "a@x.com") {
		t.Error("log-only delivery should record the recipient")
	}
}
