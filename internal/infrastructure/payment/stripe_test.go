package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/fundbridge/platform/internal/core/domain"
)

const testSecret = "whsec_test"

type stubIntents struct {
	got *stripe.PaymentIntentParams
	err error
}

func (s *stubIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	s.got = params
	if s.err != nil {
		return nil, s.err
	}
	return &stripe.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Amount:       *params.Amount,
		Currency:     stripe.Currency(*params.Currency),
		Metadata:     params.Metadata,
	}, nil
}

func sign(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

// --- CreateIntent ---

func TestCreateIntent_TagsProjectAndUser(t *testing.T) {
	stub := &stubIntents{}
	g := newGateway(stub, testSecret, "EUR")

	pi, err := g.CreateIntent(context.Background(), 5000, "proj-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "pi_1", pi.ID)
	assert.Equal(t, "pi_1_secret", pi.ClientSecret)
	assert.Equal(t, int64(5000), pi.Amount)
	assert.Equal(t, "eur", pi.Currency)
	assert.Equal(t, "proj-1", pi.ProjectID)
	assert.Equal(t, "user-1", pi.UserID)
	assert.True(t, *stub.got.AutomaticPaymentMethods.Enabled)
}

func TestCreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	stub := &stubIntents{}
	g := newGateway(stub, testSecret, "")

	_, err := g.CreateIntent(context.Background(), 0, "p", "u")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Nil(t, stub.got)
}

func TestCreateIntent_WrapsGatewayError(t *testing.T) {
	g := newGateway(&stubIntents{err: errors.New("card network down")}, testSecret, "usd")

	_, err := g.CreateIntent(context.Background(), 100, "p", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card network down")
}

// --- ParseWebhook ---

func TestParseWebhook_SucceededEvent(t *testing.T) {
	g := newGateway(&stubIntents{}, testSecret, "usd")
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "payment_intent.succeeded",
		"data": {"object": {
			"id": "pi_9",
			"object": "payment_intent",
			"amount": 2500,
			"currency": "usd",
			"metadata": {"project_id": "proj-7", "user_id": "user-3"}
		}}
	}`)

	ev, err := g.ParseWebhook(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, domain.EventPaymentSucceeded, ev.Type)
	assert.Equal(t, "pi_9", ev.Intent.ID)
	assert.Equal(t, int64(2500), ev.Intent.Amount)
	assert.Equal(t, "proj-7", ev.Intent.ProjectID)
	assert.Equal(t, "user-3", ev.Intent.UserID)
}

func TestParseWebhook_OtherEventTypeHasNoIntent(t *testing.T) {
	g := newGateway(&stubIntents{}, testSecret, "usd")
	payload := []byte(`{"id":"evt_2","object":"event","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)

	ev, err := g.ParseWebhook(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "customer.created", ev.Type)
	assert.Empty(t, ev.Intent.ID)
}

func TestParseWebhook_BadSignature(t *testing.T) {
	g := newGateway(&stubIntents{}, testSecret, "usd")
	payload := []byte(`{"id":"evt_3","object":"event","type":"payment_intent.succeeded","data":{"object":{}}}`)

	cases := map[string]string{
		"wrong secret": sign(payload, "whsec_other", time.Now()),
		"stale":        sign(payload, testSecret, time.Now().Add(-time.Hour)),
		"garbage":      "not-a-signature",
		"empty":        "",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := g.ParseWebhook(payload, header)
			assert.ErrorIs(t, err, domain.ErrInvalidSignature)
		})
	}
}
