package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log.With().Str("component", "users").Logger()}
}

func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// CompleteRegistration stores the fields the sign-up flow left empty. After
// it succeeds the user satisfies IsFullyRegistered.
func (s *UserService) CompleteRegistration(ctx context.Context, userID string, in ports.CompleteRegistrationInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	nationalID := strings.TrimSpace(in.NationalID)
	if name == "" || nationalID == "" {
		return nil, fmt.Errorf("complete registration: %w", domain.ErrIncompleteProfile)
	}

	update := ports.ProfileUpdate{Name: &name, NationalID: &nationalID}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		update.Phone = &phone
	}

	user, err := s.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Bool("complete", user.IsFullyRegistered()).Msg("registration completed")
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	return s.repo.UpdateProfile(ctx, userID, update)
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	if filter.Role != "" && !domain.Role(filter.Role).Valid() {
		return nil, domain.ErrInvalidRole
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      users,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *UserService) ChangeRole(ctx context.Context, userID string, role string) (*domain.User, error) {
	r := domain.Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.Valid() {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.repo.UpdateRole(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("role", string(r)).Msg("role changed")
	return user, nil
}
