package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/api/middleware"
	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

// newContext builds an echo context with the validator installed and, when
// userID is set, the claims the Auth middleware would have stored.
func newContext(method, target string, body io.Reader, contentType, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, string(domain.RoleNormal))
	}
	return c, rec
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

// --- AuthService ---

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*ports.Session, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.Session, error)
	resetReqFn func(ctx context.Context, email string) error
	resetFn    func(ctx context.Context, token, password string) error
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*ports.Session, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) RequestReset(ctx context.Context, email string) error {
	return s.resetReqFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return s.resetFn(ctx, token, password)
}

// --- StatusService ---

type stubStatusService struct {
	status *domain.AuthStatus
	err    error
	got    string
}

func (s *stubStatusService) Status(_ context.Context, token string) (*domain.AuthStatus, error) {
	s.got = token
	return s.status, s.err
}

// --- ProjectService / PaymentService ---

type stubProjectService struct {
	ports.ProjectService
	createFn func(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error)
	favFn    func(ctx context.Context, userID, projectID string) error
}

func (s *stubProjectService) CreateProject(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, in)
}

func (s *stubProjectService) AddFavorite(ctx context.Context, userID, projectID string) error {
	return s.favFn(ctx, userID, projectID)
}

type stubPaymentService struct {
	ports.PaymentService
	startFn func(ctx context.Context, userID, projectID string, amount int64) (*domain.PaymentIntent, error)
}

func (s *stubPaymentService) StartInvestment(ctx context.Context, userID, projectID string, amount int64) (*domain.PaymentIntent, error) {
	return s.startFn(ctx, userID, projectID, amount)
}

type stubGateway struct {
	event *domain.PaymentEvent
	err   error
	sig   string
	body  string
}

func (g *stubGateway) CreateIntent(context.Context, int64, string, string) (*domain.PaymentIntent, error) {
	return nil, nil
}

func (g *stubGateway) ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error) {
	g.body = string(payload)
	g.sig = signature
	return g.event, g.err
}

type stubDispatcher struct {
	queued []domain.PaymentEvent
}

func (d *stubDispatcher) Enqueue(ev domain.PaymentEvent) {
	d.queued = append(d.queued, ev)
}

// --- UserService ---

type stubUserService struct {
	ports.UserService
	completeFn func(ctx context.Context, userID string, in ports.CompleteRegistrationInput) (*domain.User, error)
	roleFn     func(ctx context.Context, userID, role string) (*domain.User, error)
}

func (s *stubUserService) CompleteRegistration(ctx context.Context, userID string, in ports.CompleteRegistrationInput) (*domain.User, error) {
	return s.completeFn(ctx, userID, in)
}

func (s *stubUserService) ChangeRole(ctx context.Context, userID, role string) (*domain.User, error) {
	return s.roleFn(ctx, userID, role)
}

// --- CatalogService ---

type stubCatalogService struct {
	ports.CatalogService
	subscribeFn   func(ctx context.Context, userID, mentorID string) (*domain.MentorSubscription, error)
	testimonialFn func(ctx context.Context, in ports.CreateTestimonialInput) (*domain.Testimonial, error)
}

func (s *stubCatalogService) Subscribe(ctx context.Context, userID, mentorID string) (*domain.MentorSubscription, error) {
	return s.subscribeFn(ctx, userID, mentorID)
}

func (s *stubCatalogService) CreateTestimonial(ctx context.Context, in ports.CreateTestimonialInput) (*domain.Testimonial, error) {
	return s.testimonialFn(ctx, in)
}
