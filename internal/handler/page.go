package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/services"
	"inkwell/internal/httputil"
)

// PageHandler handles page HTTP requests
type PageHandler struct {
	pageService    services.PageService
	sidebarService services.SidebarService
	logger         *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(pageService services.PageService, sidebarService services.SidebarService, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		pageService:    pageService,
		sidebarService: sidebarService,
		logger:         logger,
	}
}

// ListPages returns active and trashed pages
// GET /pages
func (h *PageHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	lists, err := h.pageService.ListPages(r.Context(), ownerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, lists)
}

// Publish upserts a page by slug
// POST /publish
func (h *PageHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req services.PublishRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, action, err := h.pageService.Publish(r.Context(), ownerID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"action": action,
		"slug":   page.Slug,
	})
}

// DeletePage soft-deletes a page identified by query param page_id or slug
// DELETE /delete-page
func (h *PageHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	req := services.DeletePageRequest{
		PageID: r.URL.Query().Get("page_id"),
		Slug:   r.URL.Query().Get("slug"),
	}

	if err := h.pageService.DeletePage(r.Context(), ownerID, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RestorePage clears a page's trash timestamp
// POST /restore-page
func (h *PageHandler) RestorePage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req struct {
		PageID string `json:"page_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.pageService.RestorePage(r.Context(), ownerID, req.PageID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MovePage places a page in a folder (null = uncategorized)
// POST /move-page
func (h *PageHandler) MovePage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req services.MovePageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.pageService.MovePage(r.Context(), ownerID, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Sidebar returns the dashboard sidebar items in display order
// GET /sidebar
func (h *PageHandler) Sidebar(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	items, err := h.sidebarService.BuildSidebar(r.Context(), ownerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// HealthCheck reports liveness
// GET /health
func (h *PageHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
