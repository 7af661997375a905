package middleware

import (
	"context"
	"net/http"

	apperrors "placely/pkg/errors"
	httputil "placely/pkg/http"
	"placely/pkg/logger"
	"placely/pkg/token"

	"github.com/julienschmidt/httprouter"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

const sessionClaimsKey contextKey = "session_claims"

// RequireSession guards a route: the session cookie must be present and
// verify cleanly, otherwise the request is rejected with 401 before the
// handler runs. Verified claims are stored on the request context.
func RequireSession(tokens *token.Service, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				_ = httputil.WriteError(w, apperrors.Unauthorized("missing session token"))
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				log.Warn("Session token rejected",
					"request_id", requestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				_ = httputil.WriteError(w, apperrors.Unauthorized("invalid or expired session token"))
				return
			}

			ctx := context.WithValue(r.Context(), sessionClaimsKey, claims)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// SessionFromContext returns the claims stored by RequireSession.
func SessionFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(sessionClaimsKey).(*token.Claims)
	return claims, ok
}
