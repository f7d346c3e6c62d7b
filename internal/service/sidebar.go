package service

import (
	"context"
	"log/slog"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
)

type sidebarService struct {
	folderRepo repositories.FolderRepository
	pageRepo   repositories.PageRepository
	logger     *slog.Logger
}

// NewSidebarService creates a new sidebar service
func NewSidebarService(
	folderRepo repositories.FolderRepository,
	pageRepo repositories.PageRepository,
	logger *slog.Logger,
) services.SidebarService {
	return &sidebarService{
		folderRepo: folderRepo,
		pageRepo:   pageRepo,
		logger:     logger,
	}
}

// BuildSidebar produces the dashboard sidebar in its display order.
// The ordering is a UI contract: depth-first from top-level folders in
// store order, each folder's direct pages before its child folders,
// children immediately after their parent (never batched by level),
// then leftover pages at level 0, then a trash entry when the trash is
// non-empty.
func (s *sidebarService) BuildSidebar(ctx context.Context, ownerID string) ([]models.SidebarItem, error) {
	folders, err := s.folderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	active, err := s.pageRepo.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.pageRepo.ListDeleted(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Adjacency built once per request; no per-node queries.
	children := make(map[string][]*models.Folder, len(folders))
	var roots []*models.Folder
	for i := range folders {
		f := &folders[i]
		if f.ParentID == nil {
			roots = append(roots, f)
		} else {
			children[*f.ParentID] = append(children[*f.ParentID], f)
		}
	}

	pagesByFolder := make(map[string][]*models.Page)
	for i := range active {
		p := &active[i]
		if p.FolderID != nil {
			pagesByFolder[*p.FolderID] = append(pagesByFolder[*p.FolderID], p)
		}
	}

	items := make([]models.SidebarItem, 0, len(folders)+len(active)+1)
	emitted := make(map[string]bool, len(active))

	var visit func(folder *models.Folder, level int)
	visit = func(folder *models.Folder, level int) {
		items = append(items, models.SidebarItem{
			Kind:  models.SidebarFolder,
			ID:    folder.ID,
			Name:  folder.Name,
			Level: level,
		})
		for _, page := range pagesByFolder[folder.ID] {
			items = append(items, models.SidebarItem{
				Kind:  models.SidebarPage,
				ID:    page.ID,
				Slug:  page.Slug,
				Level: level + 1,
			})
			emitted[page.ID] = true
		}
		for _, child := range children[folder.ID] {
			visit(child, level+1)
		}
	}

	for _, root := range roots {
		visit(root, 0)
	}

	// Uncategorized pages, plus any page pointing at a folder the walk
	// never reached (corrupt parent chains should not hide content).
	for i := range active {
		p := &active[i]
		if emitted[p.ID] {
			continue
		}
		items = append(items, models.SidebarItem{
			Kind:  models.SidebarPage,
			ID:    p.ID,
			Slug:  p.Slug,
			Level: 0,
		})
	}

	if len(deleted) > 0 {
		items = append(items, models.SidebarItem{
			Kind:  models.SidebarTrash,
			Name:  "Trash",
			Level: 0,
		})
	}

	return items, nil
}
