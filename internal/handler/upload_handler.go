package handler

import (
	"net/http"
	"path/filepath"

	"chowline/internal/model"
	"chowline/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxUploadBytes caps product/restaurant image uploads.
const maxUploadBytes = 10 << 20

// UploadHandler handles image uploads for catalogue entries.
type UploadHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store storage.Store, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/v1/uploads requests with a multipart "image"
// field. The stored object gets a fresh name; the original filename only
// contributes its extension.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "image field is required", h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
	default:
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "unsupported image type", h.logger)
		return
	}

	key := uuid.NewString() + filepath.Ext(header.Filename)
	url, err := h.store.Upload(r.Context(), key, contentType, file)
	if err != nil {
		h.logger.Error().Err(err).Str("key", key).Msg("upload failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to store image", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
