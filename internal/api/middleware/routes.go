package middleware

import (
	"strings"

	"github.com/fundbridge/platform/internal/core/domain"
)

// Family is the access class of a page route.
type Family int

const (
	FamilyNone Family = iota
	FamilyAdmin
	FamilyMentor
	FamilyAuthenticated
	FamilyUnauthOnly
	FamilyPublic
)

func (f Family) String() string {
	switch f {
	case FamilyAdmin:
		return "admin"
	case FamilyMentor:
		return "mentor"
	case FamilyAuthenticated:
		return "authenticated"
	case FamilyUnauthOnly:
		return "unauthenticated-only"
	case FamilyPublic:
		return "public"
	default:
		return "none"
	}
}

// RouteTable classifies page paths for the gate. Prefixes match whole path
// segments: "/admin" matches "/admin" and "/admin/users" but not "/administer".
// The root prefix "/" only matches "/" itself.
type RouteTable struct {
	// Matcher lists the prefixes that enter the gate at all.
	Matcher []string

	// Families, evaluated in this order; the first match wins.
	Admin         []string
	Mentor        []string
	Authenticated []string
	UnauthOnly    []string
	Public        []string

	Root                 string
	Login                string
	CompleteRegistration string
	Homes                map[domain.Role]string
}

// DefaultRouteTable returns the platform's page routes.
func DefaultRouteTable() RouteTable {
	return RouteTable{
		Matcher: []string{
			"/favorites", "/library", "/mentors", "/projects", "/landing",
			"/admin", "/mentorship", "/login", "/register", "/retrieve",
			"/profile", "/settings", "/complete-registration", "/unauthorized", "/",
		},
		Admin:                []string{"/admin"},
		Mentor:               []string{"/mentorship"},
		Authenticated:        []string{"/favorites", "/profile", "/settings", "/complete-registration"},
		UnauthOnly:           []string{"/login", "/register", "/retrieve"},
		Public:               []string{"/landing", "/projects", "/mentors", "/library", "/unauthorized"},
		Root:                 "/",
		Login:                "/login",
		CompleteRegistration: "/complete-registration",
		Homes: map[domain.Role]string{
			domain.RoleAdmin:  domain.RoleAdmin.Home(),
			domain.RoleMentor: domain.RoleMentor.Home(),
			domain.RoleNormal: domain.RoleNormal.Home(),
		},
	}
}

// Matches reports whether path enters the gate.
func (t RouteTable) Matches(path string) bool {
	return matchAny(path, t.Matcher)
}

// Classify returns the first family whose prefixes match path.
func (t RouteTable) Classify(path string) Family {
	switch {
	case matchAny(path, t.Admin):
		return FamilyAdmin
	case matchAny(path, t.Mentor):
		return FamilyMentor
	case matchAny(path, t.Authenticated):
		return FamilyAuthenticated
	case matchAny(path, t.UnauthOnly):
		return FamilyUnauthOnly
	case matchAny(path, t.Public):
		return FamilyPublic
	default:
		return FamilyNone
	}
}

// IsProtected reports whether path needs a session: admin, mentor and
// generic authenticated routes.
func (t RouteTable) IsProtected(path string) bool {
	switch t.Classify(path) {
	case FamilyAdmin, FamilyMentor, FamilyAuthenticated:
		return true
	default:
		return false
	}
}

// Home is where role lands after login.
func (t RouteTable) Home(role domain.Role) string {
	if h, ok := t.Homes[role]; ok {
		return h
	}
	return role.Home()
}

func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if matchPrefix(path, p) {
			return true
		}
	}
	return false
}

func matchPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}
