package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

// RoleResolver reads role and registration completeness from the user store
// with a single fetch per identity.
type RoleResolver struct {
	users ports.UserRepository
}

func NewRoleResolver(users ports.UserRepository) *RoleResolver {
	return &RoleResolver{users: users}
}

// Resolve returns the role and completeness for id. A missing record is the
// normal role with an incomplete registration; any other store error is
// returned as domain.ErrResolverFailure.
func (r *RoleResolver) Resolve(ctx context.Context, id *domain.Identity) (*domain.Resolution, error) {
	if id == nil || id.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := r.users.FindByID(ctx, id.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return &domain.Resolution{Role: domain.RoleNormal}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrResolverFailure, err)
	}

	return &domain.Resolution{
		Role:            domain.ParseRole(string(user.Role)),
		FullyRegistered: user.IsFullyRegistered(),
		User:            user,
	}, nil
}
