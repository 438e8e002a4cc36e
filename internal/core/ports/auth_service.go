package ports

import (
	"context"

	"github.com/fundbridge/platform/internal/core/domain"
)

// Session is a freshly issued token together with its owner.
type Session struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// CompleteRegistrationInput carries the fields collected by the completion form.
type CompleteRegistrationInput struct {
	Name       string
	NationalID string
	Phone      string
}

// UserService covers the signed-in user's own record and the admin user panel.
type UserService interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
	CompleteRegistration(ctx context.Context, userID string, in CompleteRegistrationInput) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) (*ListUsersResult, error)
	ChangeRole(ctx context.Context, userID string, role string) (*domain.User, error)
}

// ListUsersResult is a page of users.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
