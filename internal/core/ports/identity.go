package ports

import (
	"context"
	"time"

	"github.com/fundbridge/platform/internal/core/domain"
)

// TokenVerifier confirms a bearer token with the identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenIssuer mints session tokens for a user.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
}

// RoleResolver turns a verified identity into a role and a registration flag.
// Store failures are reported as domain.ErrResolverFailure, never masked.
type RoleResolver interface {
	Resolve(ctx context.Context, id *domain.Identity) (*domain.Resolution, error)
}

// StatusService composes verification and resolution for the status endpoint.
type StatusService interface {
	Status(ctx context.Context, token string) (*domain.AuthStatus, error)
}
