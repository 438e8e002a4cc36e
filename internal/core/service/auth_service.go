package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

// AuthService implements registration, login and password recovery.
type AuthService struct {
	repo   ports.UserRepository
	issuer ports.TokenIssuer
	resets ports.ResetTokenStore
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.UserRepository, issuer ports.TokenIssuer, resets ports.ResetTokenStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		issuer: issuer,
		resets: resets,
		log:    log.With().Str("component", "auth").Logger(),
		now:    time.Now,
	}
}

// Register creates a normal-role account. The national id is collected later
// by the registration completion flow, so new accounts start incomplete.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         domain.RoleNormal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.session(user)
}

// RequestReset stores a reset token when the email belongs to an account.
// Unknown emails succeed silently so the endpoint cannot be used to probe accounts.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.resets.Save(ctx, token, user.ID); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	s.log.Debug().Str("user_id", user.ID).Str("reset_token", token).Msg("password reset requested")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return domain.ErrInvalidResetToken
	}

	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password reset")
	return nil
}

func (s *AuthService) session(user *domain.User) (*ports.Session, error) {
	token, _, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.Session{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
