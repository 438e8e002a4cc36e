package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type paymentService struct {
	projects    ports.ProjectRepository
	investments ports.InvestmentRepository
	gateway     ports.PaymentGateway
	dedup       DedupChecker
	log         zerolog.Logger
}

// NewPaymentService returns a PaymentService implementation.
func NewPaymentService(
	projects ports.ProjectRepository,
	investments ports.InvestmentRepository,
	gateway ports.PaymentGateway,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.PaymentService {
	return &paymentService{
		projects:    projects,
		investments: investments,
		gateway:     gateway,
		dedup:       dedup,
		log:         log.With().Str("component", "payments").Logger(),
	}
}

// StartInvestment creates a gateway intent for an existing project.
func (s *paymentService) StartInvestment(ctx context.Context, userID, projectID string, amount int64) (*domain.PaymentIntent, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	s.log.Info().
		Str("intent", intent.ID).
		Str("project_id", projectID).
		Int64("amount", amount).
		Msg("payment intent created")
	return intent, nil
}

// Process settles one verified webhook event: dedup, ledger insert, then the
// project total. The ledger row carries a funded flag that is claimed before
// the total moves, so a run that failed half way is finished by the next
// delivery of the same event and never counted twice.
func (s *paymentService) Process(ctx context.Context, ev domain.PaymentEvent) error {
	if ev.Type != domain.EventPaymentSucceeded {
		return nil
	}

	// 1. Idempotency check, skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, ev.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("event", ev.ID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("event", ev.ID).Msg("duplicate event skipped")
		return nil
	}

	in := ev.Intent
	if in.ProjectID == "" || in.Amount <= 0 {
		return fmt.Errorf("process payment %s: %w", ev.ID, domain.ErrInvalidAmount)
	}

	// 2. Ledger row keyed by the intent. An existing row is fine: it may be
	// left unfunded by an earlier failed attempt.
	inv := &domain.Investment{
		ID:              uuid.NewString(),
		PaymentIntentID: in.ID,
		ProjectID:       in.ProjectID,
		UserID:          in.UserID,
		Amount:          in.Amount,
		Currency:        in.Currency,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.investments.Insert(ctx, inv); err != nil {
		if !errors.Is(err, domain.ErrDuplicateInvestment) {
			return fmt.Errorf("process payment: insert investment: %w", err)
		}
		s.log.Debug().Str("intent", in.ID).Msg("investment already recorded")
	}

	// 3. Claim the row, then move the project total.
	claimed, err := s.investments.ClaimFunding(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("process payment: claim investment: %w", err)
	}
	if !claimed {
		s.log.Debug().Str("intent", in.ID).Msg("investment already funded")
		s.mark(ctx, ev.ID)
		return nil
	}

	if err := s.projects.AddFunds(ctx, in.ProjectID, in.Amount); err != nil {
		if rerr := s.investments.ReleaseFunding(ctx, in.ID); rerr != nil {
			s.log.Error().Err(rerr).Str("intent", in.ID).Msg("failed to release funding claim")
		}
		return fmt.Errorf("process payment: add funds: %w", err)
	}

	s.mark(ctx, ev.ID)

	s.log.Info().
		Str("event", ev.ID).
		Str("project_id", in.ProjectID).
		Int64("amount", in.Amount).
		Msg("payment processed")
	return nil
}

func (s *paymentService) Investments(ctx context.Context, userID string) ([]*domain.Investment, error) {
	return s.investments.ListByUser(ctx, userID)
}

func (s *paymentService) mark(ctx context.Context, eventID string) {
	if err := s.dedup.Mark(ctx, eventID); err != nil {
		s.log.Warn().Err(err).Str("event", eventID).Msg("failed to set dedup key")
	}
}
