package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrUnavailable is returned when the payment processor is not
// configured; callers surface it as a 503, not a crash.
var ErrUnavailable = errors.New("payment processor unavailable")

// IntentCreator is the slice of the payment-processor SDK this domain
// needs. The Stripe client in platform/payments implements it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}

type Service struct {
	payments Repository
	intents  IntentCreator
}

// NewService builds the payment service. intents may be nil when no
// processor key is configured.
func NewService(payments Repository, intents IntentCreator) *Service {
	return &Service{payments: payments, intents: intents}
}

// CreateIntent asks the processor for a client secret covering the
// given price in USD.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("price must be positive, got %v", price)
	}
	if s.intents == nil {
		return "", ErrUnavailable
	}
	amount := int64(math.Round(price * 100))
	return s.intents.CreateIntent(ctx, amount, "usd")
}

func (s *Service) ListByPatient(ctx context.Context, email string) ([]*Payment, error) {
	return s.payments.ListByPatient(ctx, email)
}
