package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// PageRepository persists slugged Markdown pages with soft delete.
type PageRepository interface {
	// Create inserts a new active page. Returns domain.ErrConflict
	// (wrapped) when the (owner_id, slug) unique constraint fires.
	Create(ctx context.Context, page *models.Page) error

	// GetByID retrieves a page in any deletion state, scoped to owner.
	GetByID(ctx context.Context, id, ownerID string) (*models.Page, error)

	// GetBySlug retrieves an owner's page by slug regardless of deletion
	// state; returns nil, nil when absent. Publish relies on this to
	// decide insert vs update.
	GetBySlug(ctx context.Context, ownerID, slug string) (*models.Page, error)

	// GetPublishedBySlug resolves a slug for public rendering: active
	// pages only, most recently updated first.
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Page, error)

	// ListActive returns non-deleted pages ordered by updated_at descending.
	ListActive(ctx context.Context, ownerID string) ([]models.Page, error)

	// ListDeleted returns trashed pages ordered by deleted_at descending.
	ListDeleted(ctx context.Context, ownerID string) ([]models.Page, error)

	// UpdateContent rewrites markdown and folder placement in place.
	// Deletion state is left untouched.
	UpdateContent(ctx context.Context, page *models.Page) error

	// UpdateFolder moves a page to a folder (nil = uncategorized).
	UpdateFolder(ctx context.Context, id, ownerID string, folderID *string) error

	// ClearFolder detaches every page in folderID to uncategorized.
	ClearFolder(ctx context.Context, ownerID, folderID string) error

	// SoftDelete stamps deleted_at; no-op error ErrNotFound if already trashed.
	SoftDelete(ctx context.Context, id, ownerID string) error

	// Restore clears deleted_at on a trashed page.
	Restore(ctx context.Context, id, ownerID string) error
}
