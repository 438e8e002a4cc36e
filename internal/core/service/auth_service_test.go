package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fundbridge/platform/internal/core/domain"
)

func newAuthSvc(repo *stubUserRepo, resets *stubResetStore) *AuthService {
	return NewAuthService(repo, &stubIssuer{}, resets, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubResetStore())

	sess, err := svc.Register(context.Background(), "Alice", " Alice@Example.com ", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("expected a token")
	}
	u := sess.User
	if u.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != domain.RoleNormal {
		t.Fatalf("expected normal role, got %s", u.Role)
	}
	if u.IsFullyRegistered() {
		t.Fatalf("new account must start with an incomplete registration")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pass1234")) != nil {
		t.Fatalf("password hash mismatch")
	}
	if _, err := repo.FindByID(context.Background(), u.ID); err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubResetStore())

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass1234"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "other")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), newStubResetStore())

	if _, err := svc.Register(context.Background(), "", "a@example.com", "x"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubResetStore())
	reg, err := svc.Register(context.Background(), "Bob", "bob@example.com", "secret99")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	sess, err := svc.Login(context.Background(), "BOB@example.com", "secret99")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User.ID != reg.User.ID {
		t.Fatalf("logged in as %s, want %s", sess.User.ID, reg.User.ID)
	}

	if _, err := svc.Login(context.Background(), "bob@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "secret99"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo down")
	svc := newAuthSvc(repo, newStubResetStore())

	_, err := svc.Login(context.Background(), "bob@example.com", "secret99")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store errors must surface as-is, got %v", err)
	}
}

func TestAuthService_PasswordReset(t *testing.T) {
	repo := newStubUserRepo()
	resets := newStubResetStore()
	svc := newAuthSvc(repo, resets)
	if _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "oldpass1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.RequestReset(context.Background(), "carol@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(resets.tokens) != 1 {
		t.Fatalf("expected one reset token, got %d", len(resets.tokens))
	}
	var token string
	for k := range resets.tokens {
		token = k
	}

	if err := svc.ResetPassword(context.Background(), token, "newpass1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := svc.Login(context.Background(), "carol@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if err := svc.ResetPassword(context.Background(), token, "again"); !errors.Is(err, domain.ErrInvalidResetToken) {
		t.Fatalf("token must be single use, got %v", err)
	}
}

func TestAuthService_RequestReset_UnknownEmailIsSilent(t *testing.T) {
	resets := newStubResetStore()
	svc := newAuthSvc(newStubUserRepo(), resets)

	if err := svc.RequestReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(resets.tokens) != 0 {
		t.Fatalf("no token should be stored for unknown email")
	}
}
