package ports

import (
	"context"

	"github.com/fundbridge/platform/internal/core/domain"
)

// ListUsersFilter carries the admin user listing parameters.
type ListUsersFilter struct {
	Role  string // optional
	Page  int    // 1-based
	Limit int
}

// ProfileUpdate holds the optional fields a user may change on their profile.
// Nil pointers are left untouched.
type ProfileUpdate struct {
	Name       *string
	NationalID *string
	Phone      *string
	AvatarURL  *string
}

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	AddFavorite(ctx context.Context, id, projectID string) error
	RemoveFavorite(ctx context.Context, id, projectID string) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}

// ResetTokenStore keeps short-lived password reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token, userID string) error
	// Consume returns the user id bound to token and deletes it.
	Consume(ctx context.Context, token string) (string, error)
}
