// Package payments wraps the payment-processor SDK behind a narrow
// interface so domain code and tests never touch Stripe directly.
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeClient creates card payment intents through the Stripe API.
type StripeClient struct {
	api *client.API
}

// NewStripeClient builds a client from the secret key configured
// out-of-band. An empty key yields a nil client; callers treat that as
// "payments unavailable".
func NewStripeClient(secretKey string) *StripeClient {
	if secretKey == "" {
		return nil
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// CreateIntent registers a payment intent for the given amount in the
// smallest currency unit and returns the client secret the frontend
// needs to confirm the card payment.
func (s *StripeClient) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
