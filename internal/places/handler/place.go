package handler

import (
	"encoding/json"
	"net/http"

	"placely/internal/places/service"
	apperrors "placely/pkg/errors"
	httputil "placely/pkg/http"
	"placely/pkg/logger"
	"placely/pkg/middleware"
	"placely/pkg/model"
	"placely/pkg/token"

	"github.com/julienschmidt/httprouter"
)

type PlaceHandler struct {
	service service.PlaceService
	tokens  *token.Service
	log     *logger.Logger
}

func NewPlaceHandler(service service.PlaceService, tokens *token.Service, log *logger.Logger) *PlaceHandler {
	return &PlaceHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("missing session token"))
		return
	}

	var place model.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		h.writeInvalidBody(w, "Create")
		return
	}

	created, err := h.service.Create(r.Context(), claims.UserID, &place)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *PlaceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	place, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, place); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PlaceHandler) ListOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, "ListOwn", apperrors.Unauthorized("missing session token"))
		return
	}

	places, err := h.service.ListByOwner(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, "ListOwn", err)
		return
	}

	if err := httputil.WriteSuccess(w, places); err != nil {
		h.log.Error("failed to write success response", "handler", "ListOwn", "error", err)
	}
}

func (h *PlaceHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	places, err := h.service.ListAll(r.Context())
	if err != nil {
		h.writeError(w, "ListAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, places); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "error", err)
	}
}

func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, "Update", apperrors.Unauthorized("missing session token"))
		return
	}

	var update model.PlaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeInvalidBody(w, "Update")
		return
	}

	updated, err := h.service.Update(r.Context(), claims.UserID, &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *PlaceHandler) writeInvalidBody(w http.ResponseWriter, handlerName string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}

func (h *PlaceHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *PlaceHandler) RegisterRoutes(router *httprouter.Router) {
	requireSession := middleware.RequireSession(h.tokens, h.log)

	router.POST("/places", requireSession(h.Create))
	router.PUT("/places", requireSession(h.Update))
	router.GET("/user-places", requireSession(h.ListOwn))
	router.GET("/places", h.ListAll)
	router.GET("/places/:id", h.GetByID)
}
