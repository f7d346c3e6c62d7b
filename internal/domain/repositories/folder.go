package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// FolderRepository persists the per-owner folder tree.
type FolderRepository interface {
	// Create inserts a folder and fills in its generated fields.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder scoped to its owner.
	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// GetByNameAndParent finds a sibling by name; returns nil, nil when absent.
	GetByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error)

	// ListByOwner returns every folder the owner has, ordered by name.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	// UpdateParent moves a folder under a new parent (nil = top level).
	UpdateParent(ctx context.Context, id, ownerID string, parentID *string) error

	// ReparentChildren points every direct child of folderID at newParentID.
	ReparentChildren(ctx context.Context, ownerID, folderID string, newParentID *string) error

	// Delete removes the folder row.
	Delete(ctx context.Context, id, ownerID string) error
}
