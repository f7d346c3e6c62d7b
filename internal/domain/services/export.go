package services

import (
	"context"
	"io"
)

// ExportService writes an owner's pages and folders as a zip archive.
type ExportService interface {
	// WriteArchive writes the archive to w: one Markdown file per page
	// laid out by folder path, plus a manifest describing the tree.
	WriteArchive(ctx context.Context, ownerID string, w io.Writer) error
}
