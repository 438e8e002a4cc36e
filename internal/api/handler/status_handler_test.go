package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/core/domain"
)

type statusBody struct {
	IsAuthenticated  bool    `json:"isAuthenticated"`
	UserRole         string  `json:"userRole"`
	IsFullRegistered *bool   `json:"isFullRegistered"`
	User             *struct {
		ID string `json:"id"`
	} `json:"user"`
	Message string `json:"message"`
}

func callStatus(t *testing.T, svc *stubStatusService, header string) (int, statusBody, map[string]json.RawMessage) {
	t.Helper()
	c, rec := newContext(http.MethodGet, "/api/auth/status", nil, "", "")
	if header != "" {
		c.Request().Header.Set("Authorization", header)
	}
	if err := NewStatusHandler(svc, zerolog.Nop()).Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body statusBody
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &raw)
	return rec.Code, body, raw
}

func TestStatusHandler_Authenticated(t *testing.T) {
	complete := true
	svc := &stubStatusService{status: &domain.AuthStatus{
		IsAuthenticated:  true,
		UserRole:         domain.RoleAdmin,
		IsFullRegistered: &complete,
		User:             &domain.User{ID: "u1", PasswordHash: "hash"},
	}}

	code, body, raw := callStatus(t, svc, "Bearer tok")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if svc.got != "tok" {
		t.Fatalf("token not forwarded: %q", svc.got)
	}
	if !body.IsAuthenticated || body.UserRole != "admin" || body.IsFullRegistered == nil || !*body.IsFullRegistered {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.User == nil || body.User.ID != "u1" {
		t.Fatalf("user missing: %+v", body)
	}
	if strings.Contains(string(raw["user"]), "hash") {
		t.Fatalf("password hash leaked: %s", raw["user"])
	}
}

func TestStatusHandler_Unauthorized(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
		msg    string
	}{
		{"missing header", "", nil, "malformed authorization header"},
		{"wrong scheme", "Basic abc", nil, "malformed authorization header"},
		{"empty token", "Bearer ", nil, "no token provided"},
		{"rejected token", "Bearer bad", fmt.Errorf("%w: token is expired", domain.ErrInvalidToken), "invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body, _ := callStatus(t, &stubStatusService{err: tc.err}, tc.header)
			if code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", code)
			}
			if body.IsAuthenticated || body.Message != tc.msg {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestStatusHandler_FailOpenDegraded(t *testing.T) {
	svc := &stubStatusService{status: &domain.AuthStatus{IsAuthenticated: true, UserRole: domain.RoleNormal, Degraded: true}}

	code, body, raw := callStatus(t, svc, "Bearer tok")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body.UserRole != "normal" || body.IsFullRegistered != nil {
		t.Fatalf("unexpected body: %+v", body)
	}
	if string(raw["isFullRegistered"]) != "null" {
		t.Fatalf("isFullRegistered should be an explicit null, got %s", raw["isFullRegistered"])
	}
}

func TestStatusHandler_FailClosed(t *testing.T) {
	svc := &stubStatusService{err: fmt.Errorf("%w: no reachable servers", domain.ErrResolverFailure)}

	code, body, raw := callStatus(t, svc, "Bearer tok")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if body.IsAuthenticated || string(raw["isFullRegistered"]) != "null" {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestStatusHandler_UnexpectedErrorIs500(t *testing.T) {
	code, body, raw := callStatus(t, &stubStatusService{err: errors.New("panic in decoder")}, "Bearer tok")
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.IsAuthenticated || string(raw["isFullRegistered"]) != "null" {
		t.Fatalf("unexpected body: %s", raw)
	}
}
