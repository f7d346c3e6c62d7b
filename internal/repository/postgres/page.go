package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PostgresPageRepository implements the PageRepository interface
type PostgresPageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPageRepository creates a new page repository
func NewPageRepository(config *RepositoryConfig) repositories.PageRepository {
	return &PostgresPageRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const pageColumns = "id, owner_id, slug, markdown, folder_id, created_at, updated_at, deleted_at"

func scanPage(row pgx.Row, page *models.Page) error {
	return row.Scan(
		&page.ID,
		&page.OwnerID,
		&page.Slug,
		&page.Markdown,
		&page.FolderID,
		&page.CreatedAt,
		&page.UpdatedAt,
		&page.DeletedAt,
	)
}

// Create inserts a new active page. The (owner_id, slug) unique
// constraint is the safety net for concurrent publishes of the same
// new slug; violations surface as domain.ErrConflict so the caller
// can retry as an update.
func (r *PostgresPageRepository) Create(ctx context.Context, page *models.Page) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, slug, markdown, folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		page.OwnerID,
		page.Slug,
		page.Markdown,
		page.FolderID,
		page.CreatedAt,
		page.UpdatedAt,
	).Scan(&page.ID, &page.CreatedAt, &page.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("page %q: %w", page.Slug, domain.ErrConflict)
		}
		if isPgCheckError(err) {
			return fmt.Errorf("page %q: %w", page.Slug, domain.ErrValidation)
		}
		return fmt.Errorf("create page: %w", err)
	}

	return nil
}

// GetByID retrieves a page in any deletion state, scoped to owner
func (r *PostgresPageRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, pageColumns, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	var page models.Page
	if err := scanPage(exec.QueryRow(ctx, query, id, ownerID), &page); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get page: %w", err)
	}

	return &page, nil
}

// GetBySlug retrieves an owner's page by slug regardless of deletion state
func (r *PostgresPageRepository) GetBySlug(ctx context.Context, ownerID, slug string) (*models.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1 AND slug = $2
	`, pageColumns, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	var page models.Page
	if err := scanPage(exec.QueryRow(ctx, query, ownerID, slug), &page); err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, fmt.Errorf("get page by slug: %w", err)
	}

	return &page, nil
}

// GetPublishedBySlug resolves a slug for public rendering: active pages
// only. Slugs are unique per owner, not globally, so when two owners
// publish the same slug the most recently updated page wins.
func (r *PostgresPageRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE slug = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC
		LIMIT 1
	`, pageColumns, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	var page models.Page
	if err := scanPage(exec.QueryRow(ctx, query, slug), &page); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("page %q: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get published page: %w", err)
	}

	return &page, nil
}

// ListActive returns non-deleted pages ordered by updated_at descending
func (r *PostgresPageRepository) ListActive(ctx context.Context, ownerID string) ([]models.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC
	`, pageColumns, r.tables.Pages)

	return r.list(ctx, query, ownerID)
}

// ListDeleted returns trashed pages ordered by deleted_at descending
func (r *PostgresPageRepository) ListDeleted(ctx context.Context, ownerID string) ([]models.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1 AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC
	`, pageColumns, r.tables.Pages)

	return r.list(ctx, query, ownerID)
}

func (r *PostgresPageRepository) list(ctx context.Context, query, ownerID string) ([]models.Page, error) {
	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var page models.Page
		if err := scanPage(rows, &page); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}

	return pages, nil
}

// UpdateContent rewrites markdown and folder placement in place.
// deleted_at is deliberately not touched: republishing a trashed slug
// mutates the trashed row without reviving it.
func (r *PostgresPageRepository) UpdateContent(ctx context.Context, page *models.Page) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET markdown = $1, folder_id = $2, updated_at = NOW()
		WHERE id = $3 AND owner_id = $4
		RETURNING updated_at
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		page.Markdown,
		page.FolderID,
		page.ID,
		page.OwnerID,
	).Scan(&page.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("page %s: %w", page.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update page: %w", err)
	}

	return nil
}

// UpdateFolder moves a page to a folder (nil = uncategorized)
func (r *PostgresPageRepository) UpdateFolder(ctx context.Context, id, ownerID string, folderID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, folderID, id, ownerID)
	if err != nil {
		return fmt.Errorf("move page: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ClearFolder detaches every page in folderID to uncategorized
func (r *PostgresPageRepository) ClearFolder(ctx context.Context, ownerID, folderID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = NULL, updated_at = NOW()
		WHERE folder_id = $1 AND owner_id = $2
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, folderID, ownerID); err != nil {
		return fmt.Errorf("detach pages from folder: %w", err)
	}

	return nil
}

// SoftDelete stamps deleted_at on an active page
func (r *PostgresPageRepository) SoftDelete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Restore clears deleted_at on a trashed page
func (r *PostgresPageRepository) Restore(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NOT NULL
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("restore page: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
