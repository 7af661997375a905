package handler

import (
	"encoding/json"
	"net/http"

	"placely/internal/bookings/service"
	apperrors "placely/pkg/errors"
	httputil "placely/pkg/http"
	"placely/pkg/logger"
	"placely/pkg/middleware"
	"placely/pkg/model"
	"placely/pkg/token"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	tokens  *token.Service
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, tokens *token.Service, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("missing session token"))
		return
	}

	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), claims.UserID, &booking)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) ListOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, "ListOwn", apperrors.Unauthorized("missing session token"))
		return
	}

	bookings, err := h.service.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, "ListOwn", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListOwn", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	requireSession := middleware.RequireSession(h.tokens, h.log)

	router.POST("/bookings", requireSession(h.Create))
	router.GET("/bookings", requireSession(h.ListOwn))
}
