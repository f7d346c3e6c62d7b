package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
	"inkwell/internal/httputil"
)

// maxUploadBytes caps the multipart body above the largest per-kind
// limit so oversized payloads fail fast at the transport layer too.
const maxUploadBytes = 12 << 20

// MediaHandler handles media upload requests
type MediaHandler struct {
	mediaService services.MediaService
	logger       *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService services.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		logger:       logger,
	}
}

// Upload accepts a multipart form: file, kind (image|audio|video) and,
// for video, duration_seconds as measured by the client.
// POST /upload
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	var duration float64
	if v := r.FormValue("duration_seconds"); v != "" {
		duration, err = strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "duration_seconds must be a number")
			return
		}
	}

	upload := &models.MediaUpload{
		Kind:            models.MediaKind(r.FormValue("kind")),
		ContentType:     header.Header.Get("Content-Type"),
		Data:            data,
		DurationSeconds: duration,
	}

	asset, err := h.mediaService.Upload(r.Context(), ownerID, upload)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, asset)
}
