package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"placely/internal/photos/service"
	httputil "placely/pkg/http"
	"placely/pkg/logger"
	"placely/pkg/middleware"
	"placely/pkg/token"

	"github.com/julienschmidt/httprouter"
)

// photosFieldName is the multipart field carrying the files.
const photosFieldName = "photos"

type PhotoHandler struct {
	service       service.PhotoService
	tokens        *token.Service
	log           *logger.Logger
	maxUploadSize int64
}

func NewPhotoHandler(service service.PhotoService, tokens *token.Service, log *logger.Logger, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{
		service:       service,
		tokens:        tokens,
		log:           log,
		maxUploadSize: maxUploadSize,
	}
}

func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Parts beyond the memory threshold spill to temp files.
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			h.writeBadRequest(w, "Upload", "expected a multipart upload")
			return
		}
		h.writeBadRequest(w, "Upload", "malformed multipart body")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.log.Warn("failed to clean up multipart temp files", "error", err)
		}
	}()

	names, err := h.service.UploadBinary(r.Context(), r.MultipartForm.File[photosFieldName])
	if err != nil {
		h.writeError(w, "Upload", err)
		return
	}

	if err := httputil.WriteSuccess(w, names); err != nil {
		h.log.Error("failed to write success response", "handler", "Upload", "error", err)
	}
}

func (h *PhotoHandler) UploadByLink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, "UploadByLink", "Invalid request body")
		return
	}

	name, err := h.service.UploadByLink(r.Context(), req.Link)
	if err != nil {
		h.writeError(w, "UploadByLink", err)
		return
	}

	if err := httputil.WriteSuccess(w, name); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadByLink", "error", err)
	}
}

func (h *PhotoHandler) writeBadRequest(w http.ResponseWriter, handlerName, message string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: message,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}

func (h *PhotoHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *PhotoHandler) RegisterRoutes(router *httprouter.Router) {
	requireSession := middleware.RequireSession(h.tokens, h.log)

	// Uploads are session-gated: anonymous clients cannot write to disk.
	router.POST("/upload", requireSession(h.Upload))
	router.POST("/upload-by-link", requireSession(h.UploadByLink))
}
