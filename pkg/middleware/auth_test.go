package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placely/pkg/logger"
	"placely/pkg/token"

	"github.com/julienschmidt/httprouter"
)

func testTokenService(ttl time.Duration) *token.Service {
	return token.NewService(token.Config{
		Secret: []byte("middleware-test-secret-0123456789"),
		Issuer: "placely-test",
		TTL:    ttl,
	})
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

func TestRequireSession(t *testing.T) {
	tokens := testTokenService(time.Hour)
	expired := testTokenService(-time.Minute)

	validToken, err := tokens.Issue("64f1a2b3c4d5e6f7a8b9c0d1", "alice@example.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	expiredToken, err := expired.Issue("64f1a2b3c4d5e6f7a8b9c0d1", "alice@example.com")
	if err != nil {
		t.Fatalf("issuing expired token: %v", err)
	}

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantUserID string
	}{
		{
			name:       "no cookie",
			cookie:     nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty cookie",
			cookie:     &http.Cookie{Name: SessionCookieName, Value: ""},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			cookie:     &http.Cookie{Name: SessionCookieName, Value: "not-a-token"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			cookie:     &http.Cookie{Name: SessionCookieName, Value: expiredToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			cookie:     &http.Cookie{Name: SessionCookieName, Value: validToken},
			wantStatus: http.StatusOK,
			wantUserID: "64f1a2b3c4d5e6f7a8b9c0d1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			handler := RequireSession(tokens, testLogger())(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				claims, ok := SessionFromContext(r.Context())
				if !ok {
					t.Error("expected claims on context")
					return
				}
				gotUserID = claims.UserID
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/user-places", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			handler(w, req, httprouter.Params{})

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantUserID != "" && gotUserID != tt.wantUserID {
				t.Errorf("expected user id %s on context, got %s", tt.wantUserID, gotUserID)
			}
		})
	}
}

func TestSessionFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := SessionFromContext(req.Context()); ok {
		t.Error("expected no claims on a bare context")
	}
}
