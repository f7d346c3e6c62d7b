package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
)

// folderNamePattern mirrors the CHECK constraint on the folders table;
// both layers must reject the same inputs.
var folderNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	pageRepo   repositories.PageRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	pageRepo repositories.PageRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		pageRepo:   pageRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// ListFolders returns all of the owner's folders ordered by name
func (s *folderService) ListFolders(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.folderRepo.ListByOwner(ctx, ownerID)
}

// CreateFolder creates a folder at top level. The schema supports
// nesting but new folders always start at the root; nesting happens
// through MoveFolder.
func (s *folderService) CreateFolder(ctx context.Context, ownerID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.folderRepo.GetByNameAndParent(ctx, ownerID, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists", req.Name),
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	}

	now := time.Now()
	folder := &models.Folder{
		OwnerID:   ownerID,
		ParentID:  nil,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", folder.ID, "name", folder.Name, "owner_id", ownerID)

	return folder, nil
}

// MoveFolder reparents a folder after an exhaustive cycle check over
// the owner's whole tree.
func (s *folderService) MoveFolder(ctx context.Context, ownerID string, req *services.MoveFolderRequest) error {
	if req.FolderID == "" || req.TargetParentID == "" {
		return fmt.Errorf("%w: folder_id and target_parent_id are required", domain.ErrValidation)
	}
	if req.FolderID == req.TargetParentID {
		return fmt.Errorf("%w: cannot move a folder into itself", domain.ErrValidation)
	}

	folder, err := s.folderRepo.GetByID(ctx, req.FolderID, ownerID)
	if err != nil {
		return err
	}

	if _, err := s.folderRepo.GetByID(ctx, req.TargetParentID, ownerID); err != nil {
		return fmt.Errorf("%w: target parent folder does not exist", domain.ErrValidation)
	}

	all, err := s.folderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if isDescendant(all, req.FolderID, req.TargetParentID) {
		return fmt.Errorf("%w: move would make folder its own ancestor", domain.ErrValidation)
	}

	sibling, err := s.folderRepo.GetByNameAndParent(ctx, ownerID, folder.Name, &req.TargetParentID)
	if err != nil {
		return err
	}
	if sibling != nil {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in the destination", folder.Name),
			ResourceType: "folder",
			ResourceID:   sibling.ID,
		}
	}

	if err := s.folderRepo.UpdateParent(ctx, req.FolderID, ownerID, &req.TargetParentID); err != nil {
		return err
	}

	s.logger.Info("folder moved",
		"id", req.FolderID,
		"target_parent_id", req.TargetParentID,
		"owner_id", ownerID,
	)

	return nil
}

// isDescendant reports whether candidate is in the descendant set of
// folderID. It builds an adjacency map once and walks it depth-first,
// so the cost is proportional to the number of folders rather than to
// path lengths per query.
func isDescendant(folders []models.Folder, folderID, candidate string) bool {
	children := make(map[string][]string, len(folders))
	for _, f := range folders {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	stack := []string{folderID}
	seen := make(map[string]bool, len(folders))
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, child := range children[id] {
			if child == candidate {
				return true
			}
			stack = append(stack, child)
		}
	}
	return false
}

// DeleteFolder removes a folder in a single transaction: child pages
// become uncategorized, child folders are reparented to the deleted
// folder's former parent (the tree flattens one level, it never
// cascades), then the row goes away.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.pageRepo.ClearFolder(txCtx, ownerID, folderID); err != nil {
			return err
		}
		if err := s.folderRepo.ReparentChildren(txCtx, ownerID, folderID, folder.ParentID); err != nil {
			return err
		}
		return s.folderRepo.Delete(txCtx, folderID, ownerID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID, "name", folder.Name, "owner_id", ownerID)

	return nil
}

func (s *folderService) validateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name may only contain letters, digits, spaces, hyphens and underscores"),
	)
}
