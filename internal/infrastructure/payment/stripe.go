// Package payment adapts Stripe payment intents and webhooks to the
// investment flow.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/fundbridge/platform/internal/core/domain"
)

const (
	metaProjectID = "project_id"
	metaUserID    = "user_id"
)

// intentCreator is the slice of the Stripe client the gateway calls.
type intentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway implements ports.PaymentGateway.
type StripeGateway struct {
	intents       intentCreator
	webhookSecret string
	currency      string
}

func NewStripeGateway(secretKey, webhookSecret, currency string) *StripeGateway {
	sc := client.New(secretKey, nil)
	return newGateway(sc.PaymentIntents, webhookSecret, currency)
}

func newGateway(intents intentCreator, webhookSecret, currency string) *StripeGateway {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{
		intents:       intents,
		webhookSecret: webhookSecret,
		currency:      strings.ToLower(currency),
	}
}

// CreateIntent opens a payment intent tagged with the project and investor so
// the webhook can credit the right project.
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, projectID, userID string) (*domain.PaymentIntent, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(metaProjectID, projectID)
	params.AddMetadata(metaUserID, userID)

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return toIntent(pi), nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
// Only payment intent events carry an intent; other events come back with
// their type and ID so the caller can acknowledge and ignore them.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	out := &domain.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if !strings.HasPrefix(out.Type, "payment_intent.") || event.Data == nil {
		return out, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}
	out.Intent = *toIntent(&pi)
	return out, nil
}

func toIntent(pi *stripe.PaymentIntent) *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		ProjectID:    pi.Metadata[metaProjectID],
		UserID:       pi.Metadata[metaUserID],
	}
}
