package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
	"inkwell/internal/httputil"
)

func newPageTestService(pageRepo *fakePageRepo, folderRepo *fakeFolderRepo) services.PageService {
	return NewPageService(pageRepo, folderRepo, testLogger())
}

func TestPublish_ValidatesSlug(t *testing.T) {
	svc := newPageTestService(newFakePageRepo(), newFakeFolderRepo())

	cases := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"plain", "hello", false},
		{"mixed", "My_Page-2", false},
		{"digits only", "2024", false},
		{"empty", "", true},
		{"space", "hello world", true},
		{"slash", "a/b", true},
		{"dot", "page.html", true},
		{"unicode", "héllo", true},
		{"too long", strings.Repeat("a", 201), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Publish(context.Background(), testOwner, &services.PublishRequest{Slug: tc.slug, Markdown: "x"})
			if tc.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected validation error for %q, got %v", tc.slug, err)
				}
			} else if err != nil {
				t.Errorf("expected %q to be accepted, got %v", tc.slug, err)
			}
		})
	}
}

func TestPublish_CreatesThenUpdates(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newPageTestService(pageRepo, newFakeFolderRepo())

	ctx := context.Background()

	page, action, err := svc.Publish(ctx, testOwner, &services.PublishRequest{Slug: "notes", Markdown: "# v1"})
	if err != nil {
		t.Fatalf("first publish failed: %v", err)
	}
	if action != services.ActionCreated {
		t.Errorf("first publish action = %q, want %q", action, services.ActionCreated)
	}

	again, action, err := svc.Publish(ctx, testOwner, &services.PublishRequest{Slug: "notes", Markdown: "# v2"})
	if err != nil {
		t.Fatalf("second publish failed: %v", err)
	}
	if action != services.ActionUpdated {
		t.Errorf("second publish action = %q, want %q", action, services.ActionUpdated)
	}
	if again.ID != page.ID {
		t.Errorf("second publish created a new row: %s vs %s", again.ID, page.ID)
	}

	stored, _ := pageRepo.GetByID(ctx, page.ID, testOwner)
	if stored.Markdown != "# v2" {
		t.Errorf("stored markdown = %q, want %q", stored.Markdown, "# v2")
	}
}

func TestPublish_RetriesLostInsertRaceAsUpdate(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newPageTestService(pageRepo, newFakeFolderRepo())

	// A racing publish lands its row between our existence check and
	// our insert; the conflict must be absorbed as an update.
	now := time.Now()
	pageRepo.createConflict = &models.Page{
		ID:        "page-racer",
		OwnerID:   testOwner,
		Slug:      "race",
		Markdown:  "# theirs",
		CreatedAt: now,
		UpdatedAt: now,
	}

	page, action, err := svc.Publish(context.Background(), testOwner, &services.PublishRequest{Slug: "race", Markdown: "# ours"})
	if err != nil {
		t.Fatalf("publish should survive the race, got %v", err)
	}
	if action != services.ActionUpdated {
		t.Errorf("action = %q, want %q", action, services.ActionUpdated)
	}
	if page.ID != "page-racer" {
		t.Errorf("updated page id = %s, want the racer's row", page.ID)
	}
	if page.Markdown != "# ours" {
		t.Errorf("markdown = %q, want our content to win", page.Markdown)
	}
}

func TestPublish_RejectsUnknownFolder(t *testing.T) {
	svc := newPageTestService(newFakePageRepo(), newFakeFolderRepo())

	_, _, err := svc.Publish(context.Background(), testOwner, &services.PublishRequest{
		Slug:     "notes",
		Markdown: "x",
		FolderID: strPtr("folder-999"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown folder, got %v", err)
	}
}

func TestPublish_TrashedPageStaysTrashed(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newPageTestService(pageRepo, newFakeFolderRepo())

	ctx := context.Background()

	page, _, err := svc.Publish(ctx, testOwner, &services.PublishRequest{Slug: "drafts", Markdown: "# v1"})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := svc.DeletePage(ctx, testOwner, &services.DeletePageRequest{PageID: page.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// Republishing the slug updates the trashed row in place
	updated, action, err := svc.Publish(ctx, testOwner, &services.PublishRequest{Slug: "drafts", Markdown: "# v2"})
	if err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if action != services.ActionUpdated {
		t.Errorf("action = %q, want %q", action, services.ActionUpdated)
	}
	if updated.ID != page.ID {
		t.Errorf("republish created a new row: %s vs %s", updated.ID, page.ID)
	}

	stored, _ := pageRepo.GetByID(ctx, page.ID, testOwner)
	if !stored.IsDeleted() {
		t.Error("republish cleared the trash timestamp; restore is the only way back")
	}
	if stored.Markdown != "# v2" {
		t.Errorf("stored markdown = %q, want %q", stored.Markdown, "# v2")
	}
}

func TestDeletePage_BySlugAndByID(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newPageTestService(pageRepo, newFakeFolderRepo())

	ctx := context.Background()

	a, _, _ := svc.Publish(ctx, testOwner, &services.PublishRequest{Slug: "a", Markdown: "x"})
	if _, _, err := svc.Publish(ctx, testOwner, &services.PublishRequest{Slug: "b", Markdown: "x"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := svc.DeletePage(ctx, testOwner, &services.DeletePageRequest{PageID: a.ID}); err != nil {
		t.Fatalf("delete by id failed: %v", err)
	}
	if err := svc.DeletePage(ctx, testOwner, &services.DeletePageRequest{Slug: "b"}); err != nil {
		t.Fatalf("delete by slug failed: %v", err)
	}

	deleted, _ := pageRepo.ListDeleted(ctx, testOwner)
	if len(deleted) != 2 {
		t.Fatalf("trashed pages = %d, want 2", len(deleted))
	}

	// Deleting an already-trashed page fails the same way for both
	// identifier forms
	errByID := svc.DeletePage(ctx, testOwner, &services.DeletePageRequest{PageID: a.ID})
	errBySlug := svc.DeletePage(ctx, testOwner, &services.DeletePageRequest{Slug: "b"})
	if !errors.Is(errByID, domain.ErrNotFound) {
		t.Errorf("double delete by id: got %v, want not-found", errByID)
	}
	if !errors.Is(errBySlug, domain.ErrNotFound) {
		t.Errorf("double delete by slug: got %v, want not-found", errBySlug)
	}

	// Neither identifier is an error too
	err := svc.DeletePage(ctx, testOwner, &services.DeletePageRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty request: got %v, want validation error", err)
	}
}

func TestRestorePage_RoundTrip(t *testing.T) {
	pageRepo := newFakePageRepo()
	svc := newPageTestService(pageRepo, newFakeFolderRepo())

	ctx := context.Background()

	page, _, _ := svc.Publish(ctx, testOwner, &services.PublishRequest{Slug: "comeback", Markdown: "x"})
	if err := svc.DeletePage(ctx, testOwner, &services.DeletePageRequest{PageID: page.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.RestorePage(ctx, testOwner, page.ID); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	stored, _ := pageRepo.GetByID(ctx, page.ID, testOwner)
	if stored.IsDeleted() {
		t.Error("page still trashed after restore")
	}

	// Restoring an active page is not a thing
	if err := svc.RestorePage(ctx, testOwner, page.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("restore of active page: got %v, want not-found", err)
	}
}

func TestMovePage_TriStateFolder(t *testing.T) {
	pageRepo := newFakePageRepo()
	folderRepo := newFakeFolderRepo()
	svc := newPageTestService(pageRepo, folderRepo)

	ctx := context.Background()

	folderSvc := NewFolderService(folderRepo, pageRepo, fakeTxManager{}, testLogger())
	folder, err := folderSvc.CreateFolder(ctx, testOwner, &services.CreateFolderRequest{Name: "Projects"})
	if err != nil {
		t.Fatalf("folder setup failed: %v", err)
	}

	page, _, _ := svc.Publish(ctx, testOwner, &services.PublishRequest{Slug: "p", Markdown: "x"})

	// Absent folder_id is rejected; the field must be sent, even as null
	err = svc.MovePage(ctx, testOwner, &services.MovePageRequest{PageID: page.ID})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("absent folder_id: got %v, want validation error", err)
	}

	// Into the folder
	err = svc.MovePage(ctx, testOwner, &services.MovePageRequest{
		PageID:   page.ID,
		FolderID: httputil.OptionalString{Present: true, Value: &folder.ID},
	})
	if err != nil {
		t.Fatalf("move into folder failed: %v", err)
	}
	stored, _ := pageRepo.GetByID(ctx, page.ID, testOwner)
	if stored.FolderID == nil || *stored.FolderID != folder.ID {
		t.Errorf("page folder = %v, want %s", stored.FolderID, folder.ID)
	}

	// Explicit null moves it back to uncategorized
	err = svc.MovePage(ctx, testOwner, &services.MovePageRequest{
		PageID:   page.ID,
		FolderID: httputil.OptionalString{Present: true},
	})
	if err != nil {
		t.Fatalf("move to uncategorized failed: %v", err)
	}
	stored, _ = pageRepo.GetByID(ctx, page.ID, testOwner)
	if stored.FolderID != nil {
		t.Errorf("page folder = %v, want uncategorized", *stored.FolderID)
	}

	// Unknown folder
	err = svc.MovePage(ctx, testOwner, &services.MovePageRequest{
		PageID:   page.ID,
		FolderID: httputil.OptionalString{Present: true, Value: strPtr("folder-999")},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown folder: got %v, want validation error", err)
	}
}
