package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
)

// slugPattern mirrors the CHECK constraint on the pages table; the API
// boundary and the schema must independently reject the same inputs.
var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type pageService struct {
	pageRepo   repositories.PageRepository
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewPageService creates a new page service
func NewPageService(
	pageRepo repositories.PageRepository,
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) services.PageService {
	return &pageService{
		pageRepo:   pageRepo,
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// ListPages returns the owner's active and trashed pages
func (s *pageService) ListPages(ctx context.Context, ownerID string) (*services.PageLists, error) {
	active, err := s.pageRepo.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.pageRepo.ListDeleted(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &services.PageLists{Pages: active, DeletedPages: deleted}, nil
}

// Publish upserts a page by slug. The read-then-write has no lock, so
// two concurrent publishes of the same new slug can both see "no row";
// the (owner_id, slug) unique constraint settles the race and the
// loser's insert is retried as an update.
//
// A trashed page with the same slug is updated in place without
// clearing deleted_at.
func (s *pageService) Publish(ctx context.Context, ownerID string, req *services.PublishRequest) (*models.Page, services.PublishAction, error) {
	if err := s.validateSlug(req.Slug); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, ownerID); err != nil {
			return nil, "", fmt.Errorf("%w: invalid folder", domain.ErrValidation)
		}
	}

	existing, err := s.pageRepo.GetBySlug(ctx, ownerID, req.Slug)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return s.updateExisting(ctx, existing, req)
	}

	now := time.Now()
	page := &models.Page{
		OwnerID:   ownerID,
		Slug:      req.Slug,
		Markdown:  req.Markdown,
		FolderID:  req.FolderID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.pageRepo.Create(ctx, page)
	if err == nil {
		s.logger.Info("page published", "id", page.ID, "slug", page.Slug, "owner_id", ownerID)
		return page, services.ActionCreated, nil
	}

	if !errors.Is(err, domain.ErrConflict) {
		return nil, "", err
	}

	// Lost the insert race; the row exists now, so update it.
	existing, fetchErr := s.pageRepo.GetBySlug(ctx, ownerID, req.Slug)
	if fetchErr != nil || existing == nil {
		return nil, "", err
	}
	return s.updateExisting(ctx, existing, req)
}

func (s *pageService) updateExisting(ctx context.Context, page *models.Page, req *services.PublishRequest) (*models.Page, services.PublishAction, error) {
	page.Markdown = req.Markdown
	page.FolderID = req.FolderID

	if err := s.pageRepo.UpdateContent(ctx, page); err != nil {
		return nil, "", err
	}

	s.logger.Info("page updated", "id", page.ID, "slug", page.Slug, "trashed", page.IsDeleted())
	return page, services.ActionUpdated, nil
}

// DeletePage soft-deletes by ID or slug
func (s *pageService) DeletePage(ctx context.Context, ownerID string, req *services.DeletePageRequest) error {
	pageID := req.PageID

	if pageID == "" {
		if req.Slug == "" {
			return fmt.Errorf("%w: page_id or slug is required", domain.ErrValidation)
		}
		page, err := s.pageRepo.GetBySlug(ctx, ownerID, req.Slug)
		if err != nil {
			return err
		}
		if page == nil {
			return fmt.Errorf("page %q: %w", req.Slug, domain.ErrNotFound)
		}
		pageID = page.ID
	}

	if err := s.pageRepo.SoftDelete(ctx, pageID, ownerID); err != nil {
		return err
	}

	s.logger.Info("page trashed", "id", pageID, "owner_id", ownerID)
	return nil
}

// RestorePage clears the trash timestamp
func (s *pageService) RestorePage(ctx context.Context, ownerID, pageID string) error {
	if pageID == "" {
		return fmt.Errorf("%w: page_id is required", domain.ErrValidation)
	}

	if err := s.pageRepo.Restore(ctx, pageID, ownerID); err != nil {
		return err
	}

	s.logger.Info("page restored", "id", pageID, "owner_id", ownerID)
	return nil
}

// MovePage places a page in a folder, or uncategorized on explicit null
func (s *pageService) MovePage(ctx context.Context, ownerID string, req *services.MovePageRequest) error {
	if req.PageID == "" {
		return fmt.Errorf("%w: page_id is required", domain.ErrValidation)
	}
	if !req.FolderID.Present {
		return fmt.Errorf("%w: folder_id is required (null moves the page to uncategorized)", domain.ErrValidation)
	}

	if req.FolderID.Value != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID.Value, ownerID); err != nil {
			return fmt.Errorf("%w: invalid folder", domain.ErrValidation)
		}
	}

	if err := s.pageRepo.UpdateFolder(ctx, req.PageID, ownerID, req.FolderID.Value); err != nil {
		return err
	}

	s.logger.Info("page moved", "id", req.PageID, "owner_id", ownerID)
	return nil
}

func (s *pageService) validateSlug(slug string) error {
	return validation.Validate(slug,
		validation.Required,
		validation.Length(1, config.MaxSlugLength),
		validation.Match(slugPattern).Error("slug may only contain letters, digits, hyphens and underscores"),
	)
}
