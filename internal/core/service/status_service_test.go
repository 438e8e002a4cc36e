package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/core/domain"
)

func newStatusSvc(repo *stubUserRepo, policy domain.ResolverPolicy) (*StatusService, *stubVerifier) {
	v := &stubVerifier{identities: map[string]*domain.Identity{
		"good": {Subject: "u1", Email: "u1@example.com"},
	}}
	return NewStatusService(v, NewRoleResolver(repo), policy, zerolog.Nop()), v
}

func TestStatusService_Authenticated(t *testing.T) {
	repo := newStubUserRepo()
	repo.byID["u1"] = completeUser("u1", domain.RoleAdmin)
	svc, v := newStatusSvc(repo, domain.FailOpen)

	st, err := svc.Status(context.Background(), "good")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.IsAuthenticated || st.UserRole != domain.RoleAdmin {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.IsFullRegistered == nil || !*st.IsFullRegistered {
		t.Fatalf("expected isFullRegistered=true")
	}
	if st.User == nil || st.User.ID != "u1" {
		t.Fatalf("expected user in status")
	}
	if v.calls != 1 {
		t.Fatalf("token should be verified exactly once, got %d", v.calls)
	}
}

func TestStatusService_TokenErrors(t *testing.T) {
	svc, _ := newStatusSvc(newStubUserRepo(), domain.FailOpen)

	if _, err := svc.Status(context.Background(), ""); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("empty token: expected ErrNoToken, got %v", err)
	}
	if _, err := svc.Status(context.Background(), "forged"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("bad token: expected ErrInvalidToken, got %v", err)
	}
}

func TestStatusService_ResolverFailure_FailOpen(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("timeout")
	svc, _ := newStatusSvc(repo, domain.FailOpen)

	st, err := svc.Status(context.Background(), "good")
	if err != nil {
		t.Fatalf("fail-open must not error, got %v", err)
	}
	if !st.IsAuthenticated || st.UserRole != domain.RoleNormal {
		t.Fatalf("expected degraded normal role, got %+v", st)
	}
	if st.IsFullRegistered != nil {
		t.Fatalf("completeness is unknown after a failed lookup")
	}
	if !st.Degraded {
		t.Fatalf("expected Degraded flag")
	}
}

func TestStatusService_ResolverFailure_FailClosed(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("timeout")
	svc, _ := newStatusSvc(repo, domain.FailClosed)

	_, err := svc.Status(context.Background(), "good")
	if !errors.Is(err, domain.ErrResolverFailure) {
		t.Fatalf("expected ErrResolverFailure, got %v", err)
	}
}

func TestStatusService_UnknownPolicyDefaultsToFailOpen(t *testing.T) {
	svc := NewStatusService(&stubVerifier{}, NewRoleResolver(newStubUserRepo()), "", zerolog.Nop())
	if svc.policy != domain.FailOpen {
		t.Fatalf("expected fail-open default, got %q", svc.policy)
	}
}
