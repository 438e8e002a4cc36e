package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

func TestUserHandler_CompleteRegistration(t *testing.T) {
	now := time.Now()
	svc := &stubUserService{
		completeFn: func(ctx context.Context, userID string, in ports.CompleteRegistrationInput) (*domain.User, error) {
			if userID != "u1" || in.NationalID != "12345678" {
				t.Fatalf("unexpected args: %s %+v", userID, in)
			}
			return &domain.User{
				ID: userID, Email: "ada@example.com", Name: in.Name, NationalID: in.NationalID,
				Role: domain.RoleNormal, CreatedAt: now, UpdatedAt: now,
			}, nil
		},
	}
	h := NewUserHandler(svc, &stubProjectService{}, &stubPaymentService{})

	c, rec := newContext(http.MethodPost, "/api/users/me/complete-registration",
		jsonBody(`{"name":"Ada","nationalId":"12345678"}`), echo.MIMEApplicationJSON, "u1")
	if err := h.CompleteRegistration(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["isFullRegistered"] != true || body["nationalId"] != "12345678" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestUserHandler_CompleteRegistration_MissingNationalID(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, &stubProjectService{}, &stubPaymentService{})

	c, _ := newContext(http.MethodPost, "/api/users/me/complete-registration",
		jsonBody(`{"name":"Ada"}`), echo.MIMEApplicationJSON, "u1")

	var he *echo.HTTPError
	if err := h.CompleteRegistration(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if he.Message != "nationalID is required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestUserHandler_ChangeRole_RejectsUnknownRole(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, &stubProjectService{}, &stubPaymentService{})

	c, _ := newContext(http.MethodPut, "/api/admin/users/u2/role", jsonBody(`{"role":"superuser"}`), echo.MIMEApplicationJSON, "admin-1")

	var he *echo.HTTPError
	if err := h.ChangeRole(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestUserHandler_ChangeRole(t *testing.T) {
	svc := &stubUserService{
		roleFn: func(ctx context.Context, userID, role string) (*domain.User, error) {
			return &domain.User{ID: userID, Role: domain.Role(role)}, nil
		},
	}
	h := NewUserHandler(svc, &stubProjectService{}, &stubPaymentService{})

	c, rec := newContext(http.MethodPut, "/api/admin/users/u2/role", jsonBody(`{"role":"mentor"}`), echo.MIMEApplicationJSON, "admin-1")
	c.SetParamNames("id")
	c.SetParamValues("u2")

	if err := h.ChangeRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["id"] != "u2" || body["role"] != "mentor" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
