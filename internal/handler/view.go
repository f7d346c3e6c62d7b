package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"inkwell/internal/domain"
	"inkwell/internal/domain/services"
)

// pageTemplate is the public page shell. Styling is a single stylesheet
// keyed off the frontmatter theme class; anything fancier belongs to a
// frontend, not this server.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Page.Title}} — {{.SiteTitle}}</title>
<style>
body { max-width: 42rem; margin: 0 auto; padding: 2rem 1rem; font-family: Georgia, serif; line-height: 1.6; color: #222; }
body.sans { font-family: Helvetica, Arial, sans-serif; }
body.dark { background: #1b1b1b; color: #ddd; }
img, video { max-width: 100%; }
pre { overflow-x: auto; padding: 1rem; background: #f4f4f4; }
footer { margin-top: 3rem; font-size: 0.85rem; color: #888; }
</style>
</head>
<body{{with .Page.Theme}} class="{{.}}"{{end}}>
<main>{{.Body}}</main>
<footer>Last updated {{.Page.UpdatedAt}}</footer>
</body>
</html>
`))

// ViewHandler serves public rendered pages
type ViewHandler struct {
	viewService services.ViewService
	siteTitle   string
	logger      *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(viewService services.ViewService, siteTitle string, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		viewService: viewService,
		siteTitle:   siteTitle,
		logger:      logger,
	}
}

// ViewPage renders a published page by slug, no auth required
// GET /{slug}
func (h *ViewHandler) ViewPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		http.NotFound(w, r)
		return
	}

	page, err := h.viewService.RenderPage(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("render failed", "slug", slug, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, struct {
		Page      *services.RenderedPage
		Body      template.HTML
		SiteTitle string
	}{
		Page:      page,
		Body:      template.HTML(page.BodyHTML),
		SiteTitle: h.siteTitle,
	})
	if err != nil {
		h.logger.Error("template execute failed", "slug", slug, "error", err)
	}
}
