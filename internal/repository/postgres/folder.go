package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a folder and fills in its generated fields
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrConflict)
		}
		if isPgCheckError(err) {
			return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrValidation)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder scoped to its owner
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, parent_id, name, created_at, updated_at
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := exec.QueryRow(ctx, query, id, ownerID).Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetByNameAndParent finds a sibling by name; returns nil, nil when absent
func (r *PostgresFolderRepository) GetByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT id, owner_id, parent_id, name, created_at, updated_at
			FROM %s
			WHERE owner_id = $1 AND name = $2 AND parent_id IS NULL
		`, r.tables.Folders)
		args = append(args, ownerID, name)
	} else {
		query = fmt.Sprintf(`
			SELECT id, owner_id, parent_id, name, created_at, updated_at
			FROM %s
			WHERE owner_id = $1 AND name = $2 AND parent_id = $3
		`, r.tables.Folders)
		args = append(args, ownerID, name, *parentID)
	}

	exec := GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := exec.QueryRow(ctx, query, args...).Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, fmt.Errorf("get folder by name and parent: %w", err)
	}

	return &folder, nil
}

// ListByOwner returns every folder the owner has, ordered by name
func (r *PostgresFolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, parent_id, name, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY name ASC
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.OwnerID,
			&folder.ParentID,
			&folder.Name,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// UpdateParent moves a folder under a new parent (nil = top level)
func (r *PostgresFolderRepository) UpdateParent(ctx context.Context, id, ownerID string, parentID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, parentID, id, ownerID)
	if err != nil {
		return fmt.Errorf("move folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ReparentChildren points every direct child of folderID at newParentID
func (r *PostgresFolderRepository) ReparentChildren(ctx context.Context, ownerID, folderID string, newParentID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, updated_at = NOW()
		WHERE parent_id = $2 AND owner_id = $3
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, newParentID, folderID, ownerID); err != nil {
		return fmt.Errorf("reparent child folders: %w", err)
	}

	return nil
}

// Delete removes the folder row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
