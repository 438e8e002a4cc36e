package ports

import (
	"context"

	"github.com/fundbridge/platform/internal/core/domain"
)

// PaymentGateway is the external payment provider.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, projectID, userID string) (*domain.PaymentIntent, error)
	// ParseWebhook verifies the signature header against the raw payload.
	ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error)
}

// InvestmentRepository persists the investment ledger.
type InvestmentRepository interface {
	// Insert fails with domain.ErrDuplicateInvestment when the payment intent
	// was already recorded.
	Insert(ctx context.Context, inv *domain.Investment) error
	// ClaimFunding flips the row's funded flag from false to true and reports
	// whether this caller won it. ReleaseFunding undoes a claim whose project
	// update failed.
	ClaimFunding(ctx context.Context, paymentIntentID string) (bool, error)
	ReleaseFunding(ctx context.Context, paymentIntentID string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Investment, error)
}

// PaymentService handles investments from intent creation to settlement.
type PaymentService interface {
	StartInvestment(ctx context.Context, userID, projectID string, amount int64) (*domain.PaymentIntent, error)
	Process(ctx context.Context, event domain.PaymentEvent) error
	Investments(ctx context.Context, userID string) ([]*domain.Investment, error)
}
