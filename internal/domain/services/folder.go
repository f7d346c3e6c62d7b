package services

import (
	"context"

	"inkwell/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// ListFolders returns all of the owner's folders ordered by name.
	ListFolders(ctx context.Context, ownerID string) ([]models.Folder, error)

	// CreateFolder creates a folder at top level. Names are validated
	// and must be unique among top-level siblings.
	CreateFolder(ctx context.Context, ownerID string, req *CreateFolderRequest) (*models.Folder, error)

	// MoveFolder reparents a folder. Moves that would make the folder
	// its own ancestor are rejected.
	MoveFolder(ctx context.Context, ownerID string, req *MoveFolderRequest) error

	// DeleteFolder removes a folder: its pages become uncategorized and
	// its child folders are reparented one level up, atomically.
	DeleteFolder(ctx context.Context, ownerID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// MoveFolderRequest represents a folder move request
type MoveFolderRequest struct {
	FolderID       string `json:"folder_id"`
	TargetParentID string `json:"target_parent_id"`
}
