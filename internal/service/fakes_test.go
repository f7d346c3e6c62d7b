package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// In-memory repositories mirroring the postgres semantics closely
// enough for service-level tests: sentinel error wrapping, nil-on-miss
// lookups, ordering contracts.

type fakeFolderRepo struct {
	folders []*models.Folder
	nextID  int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{nextID: 1}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	for _, f := range r.folders {
		if f.OwnerID == folder.OwnerID && f.Name == folder.Name && sameParent(f.ParentID, folder.ParentID) {
			return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrConflict)
		}
	}
	folder.ID = "folder-" + strconv.Itoa(r.nextID)
	r.nextID++
	copied := *folder
	r.folders = append(r.folders, &copied)
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	for _, f := range r.folders {
		if f.ID == id && f.OwnerID == ownerID {
			copied := *f
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func (r *fakeFolderRepo) GetByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	for _, f := range r.folders {
		if f.OwnerID == ownerID && f.Name == name && sameParent(f.ParentID, parentID) {
			copied := *f
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	// Insertion order stands in for name order; tests insert in the
	// order they want returned.
	return out, nil
}

func (r *fakeFolderRepo) UpdateParent(ctx context.Context, id, ownerID string, parentID *string) error {
	for _, f := range r.folders {
		if f.ID == id && f.OwnerID == ownerID {
			f.ParentID = parentID
			f.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func (r *fakeFolderRepo) ReparentChildren(ctx context.Context, ownerID, folderID string, newParentID *string) error {
	for _, f := range r.folders {
		if f.OwnerID == ownerID && f.ParentID != nil && *f.ParentID == folderID {
			f.ParentID = newParentID
		}
	}
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, ownerID string) error {
	for i, f := range r.folders {
		if f.ID == id && f.OwnerID == ownerID {
			r.folders = append(r.folders[:i], r.folders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type fakePageRepo struct {
	pages  []*models.Page
	nextID int
	// createConflict forces the next Create to fail with ErrConflict,
	// simulating a lost publish race after the row appears.
	createConflict *models.Page
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{nextID: 1}
}

func (r *fakePageRepo) Create(ctx context.Context, page *models.Page) error {
	if r.createConflict != nil {
		racer := r.createConflict
		r.createConflict = nil
		copied := *racer
		r.pages = append(r.pages, &copied)
		return fmt.Errorf("page %q: %w", page.Slug, domain.ErrConflict)
	}
	for _, p := range r.pages {
		if p.OwnerID == page.OwnerID && p.Slug == page.Slug {
			return fmt.Errorf("page %q: %w", page.Slug, domain.ErrConflict)
		}
	}
	page.ID = "page-" + strconv.Itoa(r.nextID)
	r.nextID++
	copied := *page
	r.pages = append(r.pages, &copied)
	return nil
}

func (r *fakePageRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Page, error) {
	for _, p := range r.pages {
		if p.ID == id && p.OwnerID == ownerID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
}

func (r *fakePageRepo) GetBySlug(ctx context.Context, ownerID, slug string) (*models.Page, error) {
	for _, p := range r.pages {
		if p.OwnerID == ownerID && p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePageRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var best *models.Page
	for _, p := range r.pages {
		if p.Slug == slug && p.DeletedAt == nil {
			if best == nil || p.UpdatedAt.After(best.UpdatedAt) {
				best = p
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("page %q: %w", slug, domain.ErrNotFound)
	}
	copied := *best
	return &copied, nil
}

func (r *fakePageRepo) ListActive(ctx context.Context, ownerID string) ([]models.Page, error) {
	var out []models.Page
	for _, p := range r.pages {
		if p.OwnerID == ownerID && p.DeletedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePageRepo) ListDeleted(ctx context.Context, ownerID string) ([]models.Page, error) {
	var out []models.Page
	for _, p := range r.pages {
		if p.OwnerID == ownerID && p.DeletedAt != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePageRepo) UpdateContent(ctx context.Context, page *models.Page) error {
	for _, p := range r.pages {
		if p.ID == page.ID && p.OwnerID == page.OwnerID {
			p.Markdown = page.Markdown
			p.FolderID = page.FolderID
			p.UpdatedAt = time.Now()
			page.UpdatedAt = p.UpdatedAt
			return nil
		}
	}
	return fmt.Errorf("page %s: %w", page.ID, domain.ErrNotFound)
}

func (r *fakePageRepo) UpdateFolder(ctx context.Context, id, ownerID string, folderID *string) error {
	for _, p := range r.pages {
		if p.ID == id && p.OwnerID == ownerID {
			p.FolderID = folderID
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
}

func (r *fakePageRepo) ClearFolder(ctx context.Context, ownerID, folderID string) error {
	for _, p := range r.pages {
		if p.OwnerID == ownerID && p.FolderID != nil && *p.FolderID == folderID {
			p.FolderID = nil
		}
	}
	return nil
}

func (r *fakePageRepo) SoftDelete(ctx context.Context, id, ownerID string) error {
	for _, p := range r.pages {
		if p.ID == id && p.OwnerID == ownerID && p.DeletedAt == nil {
			now := time.Now()
			p.DeletedAt = &now
			return nil
		}
	}
	return fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
}

func (r *fakePageRepo) Restore(ctx context.Context, id, ownerID string) error {
	for _, p := range r.pages {
		if p.ID == id && p.OwnerID == ownerID && p.DeletedAt != nil {
			p.DeletedAt = nil
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
}

// fakeTxManager runs the function directly; transactional atomicity is
// a postgres concern, the services only need the call shape.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func strPtr(s string) *string {
	return &s
}
