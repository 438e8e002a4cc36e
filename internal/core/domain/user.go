package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the access-control label attached to a user record.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMentor Role = "mentor"
	RoleNormal Role = "normal"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidResetToken = errors.New("invalid or expired reset token")
var ErrIncompleteProfile = errors.New("name and national id are required")

// ParseRole maps a stored role label onto the closed enum. Empty or unknown
// labels resolve to RoleNormal.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleMentor:
		return RoleMentor
	default:
		return RoleNormal
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMentor || r == RoleNormal
}

// Home is the landing page a role is sent to after login.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleMentor:
		return "/mentorship"
	default:
		return "/landing"
	}
}

// User models a platform account. ID doubles as the token subject.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	NationalID   string    `json:"nationalId,omitempty" bson:"national_id,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty" bson:"avatar_url,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	Favorites    []string  `json:"-" bson:"favorites,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// IsFullyRegistered reports whether every field required to finish sign-up
// is present: national id, email, name and both timestamps.
func (u *User) IsFullyRegistered() bool {
	if u == nil {
		return false
	}
	return strings.TrimSpace(u.NationalID) != "" &&
		strings.TrimSpace(u.Email) != "" &&
		strings.TrimSpace(u.Name) != "" &&
		!u.CreatedAt.IsZero() &&
		!u.UpdatedAt.IsZero()
}
