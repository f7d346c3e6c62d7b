package services

import (
	"context"
)

// RenderedPage is a published page ready to serve.
type RenderedPage struct {
	Slug      string
	Title     string
	Theme     string // frontmatter-driven style class, empty = default
	BodyHTML  string
	UpdatedAt string
}

// ViewService resolves public slugs and renders Markdown to HTML.
type ViewService interface {
	RenderPage(ctx context.Context, slug string) (*RenderedPage, error)
}
