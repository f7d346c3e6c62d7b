package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
)

type exportService struct {
	folderRepo repositories.FolderRepository
	pageRepo   repositories.PageRepository
	logger     *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	folderRepo repositories.FolderRepository,
	pageRepo repositories.PageRepository,
	logger *slog.Logger,
) services.ExportService {
	return &exportService{
		folderRepo: folderRepo,
		pageRepo:   pageRepo,
		logger:     logger,
	}
}

type exportFrontmatter struct {
	Slug      string     `yaml:"slug"`
	Folder    string     `yaml:"folder,omitempty"`
	CreatedAt time.Time  `yaml:"created_at"`
	UpdatedAt time.Time  `yaml:"updated_at"`
	DeletedAt *time.Time `yaml:"deleted_at,omitempty"`
}

type manifestFolder struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Path     string  `yaml:"path"`
	ParentID *string `yaml:"parent_id,omitempty"`
}

type manifestPage struct {
	ID        string     `yaml:"id"`
	Slug      string     `yaml:"slug"`
	Folder    string     `yaml:"folder,omitempty"`
	DeletedAt *time.Time `yaml:"deleted_at,omitempty"`
}

type manifest struct {
	ExportedAt time.Time        `yaml:"exported_at"`
	Folders    []manifestFolder `yaml:"folders"`
	Pages      []manifestPage   `yaml:"pages"`
}

// WriteArchive writes the owner's full dataset as a zip: one Markdown
// file per page under its folder path, trashed pages under _trash/,
// and a manifest.yaml describing the tree.
func (s *exportService) WriteArchive(ctx context.Context, ownerID string, w io.Writer) error {
	folders, err := s.folderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	active, err := s.pageRepo.ListActive(ctx, ownerID)
	if err != nil {
		return err
	}
	deleted, err := s.pageRepo.ListDeleted(ctx, ownerID)
	if err != nil {
		return err
	}

	paths := folderPaths(folders)

	zw := zip.NewWriter(w)

	man := manifest{ExportedAt: time.Now()}
	for _, f := range folders {
		man.Folders = append(man.Folders, manifestFolder{
			ID:       f.ID,
			Name:     f.Name,
			Path:     paths[f.ID],
			ParentID: f.ParentID,
		})
	}

	writePage := func(page *models.Page, dir string) error {
		name := page.Slug + ".md"
		if dir != "" {
			name = dir + "/" + name
		}

		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create archive entry %s: %w", name, err)
		}

		meta := exportFrontmatter{
			Slug:      page.Slug,
			CreatedAt: page.CreatedAt,
			UpdatedAt: page.UpdatedAt,
			DeletedAt: page.DeletedAt,
		}
		if page.FolderID != nil {
			meta.Folder = paths[*page.FolderID]
		}

		metaBytes, err := yaml.Marshal(&meta)
		if err != nil {
			return fmt.Errorf("marshal frontmatter for %s: %w", page.Slug, err)
		}

		if _, err := fmt.Fprintf(fw, "---\n%s---\n\n%s", metaBytes, page.Markdown); err != nil {
			return fmt.Errorf("write archive entry %s: %w", name, err)
		}
		return nil
	}

	for i := range active {
		page := &active[i]
		dir := ""
		if page.FolderID != nil {
			dir = paths[*page.FolderID]
		}
		if err := writePage(page, dir); err != nil {
			return err
		}
		man.Pages = append(man.Pages, manifestPage{
			ID:     page.ID,
			Slug:   page.Slug,
			Folder: dir,
		})
	}

	for i := range deleted {
		page := &deleted[i]
		if err := writePage(page, "_trash"); err != nil {
			return err
		}
		man.Pages = append(man.Pages, manifestPage{
			ID:        page.ID,
			Slug:      page.Slug,
			DeletedAt: page.DeletedAt,
		})
	}

	mw, err := zw.Create("manifest.yaml")
	if err != nil {
		return fmt.Errorf("create manifest entry: %w", err)
	}
	manBytes, err := yaml.Marshal(&man)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if _, err := mw.Write(manBytes); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}

	s.logger.Info("export written",
		"owner_id", ownerID,
		"folders", len(folders),
		"pages", len(active),
		"trashed", len(deleted),
	)

	return nil
}

// folderPaths computes each folder's slash-joined path by walking
// parent chains. A depth guard keeps corrupt cycles from hanging the
// export; such folders fall back to their bare name.
func folderPaths(folders []models.Folder) map[string]string {
	byID := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	paths := make(map[string]string, len(folders))
	for i := range folders {
		f := &folders[i]
		path := f.Name
		cur := f
		for depth := 0; cur.ParentID != nil && depth < len(folders); depth++ {
			parent, ok := byID[*cur.ParentID]
			if !ok {
				break
			}
			path = parent.Name + "/" + path
			cur = parent
		}
		paths[f.ID] = path
	}
	return paths
}
