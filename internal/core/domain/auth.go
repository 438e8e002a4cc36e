package domain

import "errors"

var (
	ErrNoToken         = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid token")
	ErrMalformedHeader = errors.New("malformed authorization header")
	ErrResolverFailure = errors.New("role resolver failure")

	// ErrStatusTimeout is returned when the auth status round-trip did not
	// answer within its deadline, retries included.
	ErrStatusTimeout = errors.New("auth status timed out")
	// ErrStatusUnavailable covers transport failures and unparseable bodies.
	ErrStatusUnavailable = errors.New("auth status unavailable")
	// ErrStatusDegraded means the status endpoint answered but could not
	// resolve the role and refused to guess.
	ErrStatusDegraded = errors.New("auth status degraded")
)

// Identity is the decoded result of a successful token verification.
type Identity struct {
	Subject string
	Email   string
	Claims  map[string]any
}

// Resolution is what the role resolver knows about a verified subject.
type Resolution struct {
	Role            Role
	FullyRegistered bool
	User            *User
}

// AuthStatus is the wire shape of GET /api/auth/status. It is shared by the
// endpoint and the routing gate that consumes it.
type AuthStatus struct {
	IsAuthenticated  bool   `json:"isAuthenticated"`
	UserRole         Role   `json:"userRole,omitempty"`
	IsFullRegistered *bool  `json:"isFullRegistered"`
	User             *User  `json:"user,omitempty"`
	Message          string `json:"message,omitempty"`

	// Degraded is set when the role could not be read and was defaulted.
	Degraded bool `json:"-"`
}

// RegistrationIncomplete reports an explicit false completeness flag. A nil
// flag means unknown and never forces the completion page.
func (s *AuthStatus) RegistrationIncomplete() bool {
	return s.IsFullRegistered != nil && !*s.IsFullRegistered
}

// ResolverPolicy decides what the status endpoint does when the role lookup
// fails.
type ResolverPolicy string

const (
	FailOpen   ResolverPolicy = "fail-open"
	FailClosed ResolverPolicy = "fail-closed"
)
