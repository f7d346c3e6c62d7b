package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/domain"
	"inkwell/internal/domain/services"
	"inkwell/internal/markdown"
)

func newViewTestService(pageRepo *fakePageRepo) services.ViewService {
	return NewViewService(pageRepo, markdown.NewRenderer(), testLogger())
}

func TestRenderPage_WithFrontmatter(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newViewTestService(pageRepo)

	ctx := context.Background()
	page := seedPage(t, pageRepo, "styled", nil)
	page.Markdown = "---\ntitle: Styled Page\ntheme: dark\n---\n\n# Heading\n\nbody\n"
	if err := pageRepo.UpdateContent(ctx, page); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	rendered, err := svc.RenderPage(ctx, "styled")
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}

	if rendered.Title != "Styled Page" {
		t.Errorf("title = %q, want %q", rendered.Title, "Styled Page")
	}
	if rendered.Theme != "dark" {
		t.Errorf("theme = %q, want %q", rendered.Theme, "dark")
	}
	if !strings.Contains(rendered.BodyHTML, "<h1") {
		t.Errorf("body not rendered to HTML: %q", rendered.BodyHTML)
	}
	if strings.Contains(rendered.BodyHTML, "title: Styled Page") {
		t.Errorf("frontmatter leaked into the body: %q", rendered.BodyHTML)
	}
}

func TestRenderPage_DefaultsTitleToSlug(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newViewTestService(pageRepo)

	seedPage(t, pageRepo, "untitled", nil)

	rendered, err := svc.RenderPage(context.Background(), "untitled")
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if rendered.Title != "untitled" {
		t.Errorf("title = %q, want the slug", rendered.Title)
	}
}

func TestRenderPage_BrokenFrontmatterFallsBackToRaw(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newViewTestService(pageRepo)

	ctx := context.Background()
	page := seedPage(t, pageRepo, "broken", nil)
	page.Markdown = "---\ntitle: [unclosed\n---\n\nstill readable\n"
	if err := pageRepo.UpdateContent(ctx, page); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	rendered, err := svc.RenderPage(ctx, "broken")
	if err != nil {
		t.Fatalf("broken frontmatter should not fail the render: %v", err)
	}
	if !strings.Contains(rendered.BodyHTML, "still readable") {
		t.Errorf("body lost: %q", rendered.BodyHTML)
	}
}

func TestRenderPage_TrashedAndUnknownAreNotFound(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newViewTestService(pageRepo)

	ctx := context.Background()
	page := seedPage(t, pageRepo, "hidden", nil)
	if err := pageRepo.SoftDelete(ctx, page.ID, testOwner); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	if _, err := svc.RenderPage(ctx, "hidden"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("trashed slug: got %v, want not-found", err)
	}
	if _, err := svc.RenderPage(ctx, "never-existed"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown slug: got %v, want not-found", err)
	}
}
