package service

import (
	"context"
	"errors"
	"testing"
	"time"

	userserrors "placely/internal/users/errors"
	"placely/internal/users/validator"
	"placely/pkg/config"
	apperrors "placely/pkg/errors"
	"placely/pkg/logger"
	"placely/pkg/model"
	"placely/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "64f1a2b3c4d5e6f7a8b9c0d1"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func newTestService(repo *mockUserRepository) (UserService, *token.Service) {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	cfg := &config.Config{
		Log:        log,
		BcryptCost: bcrypt.MinCost,
	}
	tokens := token.NewService(token.Config{
		Secret: []byte("users-service-test-secret-000000"),
		Issuer: "placely-test",
		TTL:    time.Hour,
	})
	return NewUserService(repo, validator.NewUserValidator(log), tokens, cfg), tokens
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.RegisterRequest
		repo     *mockUserRepository
		wantCode string
	}{
		{
			name: "valid registration",
			req:  &model.RegisterRequest{Name: "Alice", Email: "Alice@Example.com", Password: "sup3r-secret"},
			repo: &mockUserRepository{},
		},
		{
			name:     "missing email",
			req:      &model.RegisterRequest{Name: "Alice", Password: "sup3r-secret"},
			repo:     &mockUserRepository{},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "short password",
			req:      &model.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "short"},
			repo:     &mockUserRepository{},
			wantCode: apperrors.CodeValidation,
		},
		{
			name: "duplicate email",
			req:  &model.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "sup3r-secret"},
			repo: &mockUserRepository{
				createFunc: func(ctx context.Context, user *model.User) error {
					return userserrors.ErrDuplicateEmail
				},
			},
			wantCode: apperrors.CodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(tt.repo)

			user, err := svc.Register(context.Background(), tt.req)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if user.Email != "alice@example.com" {
					t.Errorf("expected normalized email, got %s", user.Email)
				}
				if user.PasswordHash == "" || user.PasswordHash == tt.req.Password {
					t.Error("expected password to be stored hashed")
				}
				return
			}

			appErr := apperrors.AsAppError(err)
			if appErr.Code != tt.wantCode {
				t.Errorf("expected error code %s, got %s", tt.wantCode, appErr.Code)
			}
		})
	}
}

func TestRegister_NeverStoresRawPassword(t *testing.T) {
	var stored *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			stored = user
			user.ID = "64f1a2b3c4d5e6f7a8b9c0d1"
			return nil
		},
	}
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("sup3r-secret")); err != nil {
		t.Errorf("stored hash does not verify the original password: %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("sup3r-secret"), bcrypt.MinCost)
	existing := &model.User{
		ID:           "64f1a2b3c4d5e6f7a8b9c0d1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}

	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email == existing.Email {
				return existing, nil
			}
			return nil, userserrors.ErrNotFound
		},
	}

	tests := []struct {
		name     string
		req      *model.LoginRequest
		wantCode string
		wantMsg  string
	}{
		{
			name: "valid credentials",
			req:  &model.LoginRequest{Email: "alice@example.com", Password: "sup3r-secret"},
		},
		{
			name: "normalized email still matches",
			req:  &model.LoginRequest{Email: "  Alice@Example.COM ", Password: "sup3r-secret"},
		},
		{
			name:     "wrong password",
			req:      &model.LoginRequest{Email: "alice@example.com", Password: "wrong"},
			wantCode: apperrors.CodeAuth,
			wantMsg:  "incorrect password",
		},
		{
			name:     "unknown email",
			req:      &model.LoginRequest{Email: "nobody@example.com", Password: "sup3r-secret"},
			wantCode: apperrors.CodeAuth,
			wantMsg:  "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, tokens := newTestService(repo)

			user, sessionToken, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				claims, verr := tokens.Verify(sessionToken)
				if verr != nil {
					t.Fatalf("issued token does not verify: %v", verr)
				}
				if claims.UserID != user.ID {
					t.Errorf("token user id %s does not match user %s", claims.UserID, user.ID)
				}
				return
			}

			appErr := apperrors.AsAppError(err)
			if appErr.Code != tt.wantCode {
				t.Errorf("expected error code %s, got %s", tt.wantCode, appErr.Code)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestLogin_NoLockoutAfterRepeatedFailures(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("sup3r-secret"), bcrypt.MinCost)
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID: "64f1a2b3c4d5e6f7a8b9c0d1", Email: "alice@example.com", PasswordHash: string(hash),
			}, nil
		},
	}
	svc, _ := newTestService(repo)

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(context.Background(), &model.LoginRequest{
			Email: "alice@example.com", Password: "wrong",
		})
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeAuth {
			t.Fatalf("attempt %d: expected %s, got %s", i+1, apperrors.CodeAuth, appErr.Code)
		}
	}

	// A correct password still succeeds after failed attempts.
	_, _, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "alice@example.com", Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("expected login to succeed after failures, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	repo := &mockUserRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			if id == "64f1a2b3c4d5e6f7a8b9c0d1" {
				return &model.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
			}
			return nil, userserrors.ErrNotFound
		},
	}
	svc, _ := newTestService(repo)

	profile, err := svc.Profile(context.Background(), "64f1a2b3c4d5e6f7a8b9c0d1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if profile.Name != "Alice" || profile.Email != "alice@example.com" || profile.ID != "64f1a2b3c4d5e6f7a8b9c0d1" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	_, err = svc.Profile(context.Background(), "64f1a2b3c4d5e6f7a8b9c0d2")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND for unknown user, got %v", err)
	}
}
