package services

import (
	"context"

	"inkwell/internal/domain/models"
)

// SidebarService builds the ordered dashboard sidebar.
type SidebarService interface {
	// BuildSidebar produces the owner's sidebar items in display order:
	// depth-first folders with their pages, leftover pages at level 0,
	// and a trash entry last when trashed pages exist.
	BuildSidebar(ctx context.Context, ownerID string) ([]models.SidebarItem, error)
}
