package service

import (
	"context"
	"log/slog"

	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
	"inkwell/internal/markdown"
)

type viewService struct {
	pageRepo repositories.PageRepository
	renderer *markdown.Renderer
	logger   *slog.Logger
}

// NewViewService creates a new view service
func NewViewService(
	pageRepo repositories.PageRepository,
	renderer *markdown.Renderer,
	logger *slog.Logger,
) services.ViewService {
	return &viewService{
		pageRepo: pageRepo,
		renderer: renderer,
		logger:   logger,
	}
}

// RenderPage resolves a public slug and renders its body. Trashed and
// unknown slugs both surface as not-found; the public surface never
// distinguishes them.
func (s *viewService) RenderPage(ctx context.Context, slug string) (*services.RenderedPage, error) {
	page, err := s.pageRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	meta, body, err := markdown.SplitFrontmatter([]byte(page.Markdown))
	if err != nil {
		// Broken frontmatter shouldn't 500 a published page; render
		// the raw body instead.
		s.logger.Warn("frontmatter parse failed", "slug", slug, "error", err)
		meta = markdown.PageMeta{}
		body = []byte(page.Markdown)
	}

	html, err := s.renderer.Render(body)
	if err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = page.Slug
	}

	return &services.RenderedPage{
		Slug:      page.Slug,
		Title:     title,
		Theme:     meta.Theme,
		BodyHTML:  string(html),
		UpdatedAt: page.UpdatedAt.Format("January 2, 2006"),
	}, nil
}
