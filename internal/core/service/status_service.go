package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

// StatusService answers "who is this token" for the status endpoint. The
// token is verified once and the identity is handed to the resolver.
type StatusService struct {
	verifier ports.TokenVerifier
	resolver ports.RoleResolver
	policy   domain.ResolverPolicy
	log      zerolog.Logger
}

func NewStatusService(verifier ports.TokenVerifier, resolver ports.RoleResolver, policy domain.ResolverPolicy, log zerolog.Logger) *StatusService {
	if policy != domain.FailClosed {
		policy = domain.FailOpen
	}
	return &StatusService{
		verifier: verifier,
		resolver: resolver,
		policy:   policy,
		log:      log.With().Str("component", "auth_status").Logger(),
	}
}

// Status returns the auth status of token.
//
// Errors: domain.ErrNoToken and domain.ErrInvalidToken for rejected tokens;
// domain.ErrResolverFailure when the store failed and the policy is
// fail-closed. Under fail-open the failure is logged and the user is
// reported as normal with unknown completeness.
func (s *StatusService) Status(ctx context.Context, token string) (*domain.AuthStatus, error) {
	if token == "" {
		return nil, domain.ErrNoToken
	}

	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	res, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrResolverFailure) {
			return nil, err
		}
		if s.policy == domain.FailClosed {
			s.log.Error().Err(err).Str("subject", id.Subject).Msg("role lookup failed, denying")
			return nil, err
		}
		s.log.Warn().Err(err).Str("subject", id.Subject).Msg("role lookup failed, degrading to normal role")
		return &domain.AuthStatus{
			IsAuthenticated: true,
			UserRole:        domain.RoleNormal,
			Degraded:        true,
		}, nil
	}

	complete := res.FullyRegistered
	return &domain.AuthStatus{
		IsAuthenticated:  true,
		UserRole:         res.Role,
		IsFullRegistered: &complete,
		User:             res.User,
	}, nil
}
