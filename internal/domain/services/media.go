package services

import (
	"context"

	"inkwell/internal/domain/models"
)

// MediaService validates uploads and relays them to object storage.
// Validation happens entirely before any storage call: an oversized or
// mistyped payload never leaves the process.
type MediaService interface {
	Upload(ctx context.Context, ownerID string, upload *models.MediaUpload) (*models.MediaAsset, error)
}
