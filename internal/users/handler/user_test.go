package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "placely/pkg/errors"
	"placely/pkg/logger"
	"placely/pkg/middleware"
	"placely/pkg/model"
	"placely/pkg/token"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockUserService struct {
	registerFunc func(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	loginFunc    func(ctx context.Context, req *model.LoginRequest) (*model.User, string, error)
	profileFunc  func(ctx context.Context, userID string) (*model.Profile, error)
}

func (m *mockUserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return &model.User{ID: "64f1a2b3c4d5e6f7a8b9c0d1", Name: req.Name, Email: req.Email}, nil
}

func (m *mockUserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, "", apperrors.Auth("not found")
}

func (m *mockUserService) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	if m.profileFunc != nil {
		return m.profileFunc(ctx, userID)
	}
	return nil, apperrors.NotFoundWithID("User", userID)
}

func newTestHandler(svc *mockUserService) (*UserHandler, *token.Service) {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	tokens := token.NewService(token.Config{
		Secret: []byte("users-handler-test-secret-000000"),
		Issuer: "placely-test",
		TTL:    time.Hour,
	})
	return NewUserHandler(svc, tokens, log), tokens
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	svc := &mockUserService{
		loginFunc: func(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
			return &model.User{ID: "64f1a2b3c4d5e6f7a8b9c0d1", Email: req.Email}, "signed-token", nil
		},
	}
	h, _ := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"alice@example.com","password":"sup3r-secret"}`))
	w := httptest.NewRecorder()

	h.Login(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if sessionCookie.Value != "signed-token" {
		t.Errorf("expected cookie value 'signed-token', got %q", sessionCookie.Value)
	}
	if !sessionCookie.HttpOnly {
		t.Error("expected session cookie to be HTTP-only")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := &mockUserService{
		loginFunc: func(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
			return nil, "", apperrors.Auth("incorrect password")
		},
	}
	h, _ := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
	w := httptest.NewRecorder()

	h.Login(w, req, httprouter.Params{})

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "incorrect password") {
		t.Errorf("expected 'incorrect password' in body, got %s", w.Body.String())
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("expected no cookie on failed login")
	}
}

func TestProfile_NoCookieReturnsNull(t *testing.T) {
	h, _ := newTestHandler(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()

	h.Profile(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "null" {
		t.Errorf("expected body 'null', got %q", body)
	}
}

func TestProfile_WithValidCookie(t *testing.T) {
	svc := &mockUserService{
		profileFunc: func(ctx context.Context, userID string) (*model.Profile, error) {
			return &model.Profile{Name: "Alice", Email: "alice@example.com", ID: userID}, nil
		},
	}
	h, tokens := newTestHandler(svc)

	sessionToken, err := tokens.Issue("64f1a2b3c4d5e6f7a8b9c0d1", "alice@example.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sessionToken})
	w := httptest.NewRecorder()

	h.Profile(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var profile model.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if profile.ID != "64f1a2b3c4d5e6f7a8b9c0d1" || profile.Name != "Alice" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestProfile_InvalidCookie(t *testing.T) {
	h, _ := newTestHandler(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tampered"})
	w := httptest.NewRecorder()

	h.Profile(w, req, httprouter.Params{})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h, _ := newTestHandler(&mockUserService{})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()

	h.Logout(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookieName {
		t.Fatal("expected the session cookie to be rewritten")
	}
	if cookies[0].Value != "" || cookies[0].MaxAge != -1 {
		t.Errorf("expected cleared cookie, got value=%q maxAge=%d", cookies[0].Value, cookies[0].MaxAge)
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	h, _ := newTestHandler(&mockUserService{})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Register(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
