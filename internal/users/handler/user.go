package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"placely/internal/users/service"
	apperrors "placely/pkg/errors"
	httputil "placely/pkg/http"
	"placely/pkg/logger"
	"placely/pkg/middleware"
	"placely/pkg/model"
	"placely/pkg/token"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service service.UserService
	tokens  *token.Service
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, tokens *token.Service, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "error", writeErr)
		}
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, user); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "error", writeErr)
		}
		return
	}

	user, sessionToken, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "error", writeErr)
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(sessionToken, h.tokens.TTL()))

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

// Profile supports an anonymous branch: no cookie yields a JSON null body
// rather than a 401. A present but invalid cookie is still rejected.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		if writeErr := httputil.WriteSuccess(w, nil); writeErr != nil {
			h.log.Error("failed to write success response", "handler", "Profile", "error", writeErr)
		}
		return
	}

	claims, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		if writeErr := httputil.WriteError(w, authError(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Profile", "error", writeErr)
		}
		return
	}

	profile, err := h.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Profile", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "Profile", "error", err)
	}
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Stateless tokens cannot be revoked server-side; logout only clears
	// the client's cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	if err := httputil.WriteSuccess(w, true); err != nil {
		h.log.Error("failed to write success response", "handler", "Logout", "error", err)
	}
}

func authError(err error) error {
	return apperrors.Unauthorized("invalid or expired session token").WithDetails(map[string]any{
		"reason": err.Error(),
	})
}

func (h *UserHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.GET("/profile", h.Profile)
	router.POST("/logout", h.Logout)
}
