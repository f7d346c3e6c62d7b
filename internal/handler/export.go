package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"inkwell/internal/domain/services"
)

// ExportHandler serves the owner's data as a zip download
type ExportHandler struct {
	exportService services.ExportService
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService services.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// Export builds the archive in memory and writes it in one shot, so a
// store failure maps to a clean 500 instead of a truncated download.
// Pages are Markdown text; the buffer stays small.
// GET /export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteArchive(r.Context(), ownerID, &buf); err != nil {
		handleError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("export-%s.zip", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("export write failed", "owner_id", ownerID, "error", err)
	}
}
