package services

import (
	"context"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
)

// PublishAction reports what a publish call did.
type PublishAction string

const (
	ActionCreated PublishAction = "created"
	ActionUpdated PublishAction = "updated"
)

// PageService handles page business logic
type PageService interface {
	// ListPages returns the owner's active and trashed pages.
	ListPages(ctx context.Context, ownerID string) (*PageLists, error)

	// Publish upserts a page by slug. If the slug exists for the owner
	// (active or trashed) the row is updated in place, otherwise a new
	// active page is inserted.
	Publish(ctx context.Context, ownerID string, req *PublishRequest) (*models.Page, PublishAction, error)

	// DeletePage soft-deletes by ID or slug (exactly one must be set).
	DeletePage(ctx context.Context, ownerID string, req *DeletePageRequest) error

	// RestorePage clears the trash timestamp.
	RestorePage(ctx context.Context, ownerID, pageID string) error

	// MovePage places a page in a folder, or uncategorized when the
	// request carries an explicit null.
	MovePage(ctx context.Context, ownerID string, req *MovePageRequest) error
}

// PageLists pairs the two dashboard page collections.
type PageLists struct {
	Pages        []models.Page `json:"pages"`
	DeletedPages []models.Page `json:"deleted_pages"`
}

// PublishRequest represents a publish call
type PublishRequest struct {
	Slug     string  `json:"slug"`
	Markdown string  `json:"markdown"`
	FolderID *string `json:"folder_id,omitempty"`
}

// DeletePageRequest identifies a page by ID or slug
type DeletePageRequest struct {
	PageID string
	Slug   string
}

// MovePageRequest represents a page move. FolderID uses tri-state
// semantics: absent = no change requested (rejected), null =
// uncategorized, value = target folder.
type MovePageRequest struct {
	PageID   string                  `json:"page_id"`
	FolderID httputil.OptionalString `json:"folder_id"`
}
