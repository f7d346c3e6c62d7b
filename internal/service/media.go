package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
	"inkwell/internal/storage"
)

// Accepted MIME types per kind. heic/heif appear under video because
// the product treats them as a video container on upload.
var (
	audioTypes = map[string]bool{
		"audio/mpeg":  true,
		"audio/mp3":   true,
		"audio/wav":   true,
		"audio/wave":  true,
		"audio/x-wav": true,
	}
	videoTypes = map[string]bool{
		"video/mp4":       true,
		"video/quicktime": true,
		"image/heic":      true,
		"image/heif":      true,
	}
)

var extensionByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"audio/mpeg":      ".mp3",
	"audio/mp3":       ".mp3",
	"audio/wav":       ".wav",
	"audio/wave":      ".wav",
	"audio/x-wav":     ".wav",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"image/heic":      ".heic",
	"image/heif":      ".heif",
}

type mediaService struct {
	store  storage.ObjectStore
	logger *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(store storage.ObjectStore, logger *slog.Logger) services.MediaService {
	return &mediaService{
		store:  store,
		logger: logger,
	}
}

// Upload validates the payload and relays it to the kind's bucket under
// a randomized key. Client-side checks on size and duration are
// advisory only; everything is re-enforced here, before the first byte
// goes to storage.
func (s *mediaService) Upload(ctx context.Context, ownerID string, upload *models.MediaUpload) (*models.MediaAsset, error) {
	if len(upload.Data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrValidation)
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(upload.Data)
	}
	contentType = normalizeContentType(contentType)

	bucket, err := s.validate(upload, contentType)
	if err != nil {
		return nil, err
	}

	key := uuid.NewString() + extensionByType[contentType]
	url, err := s.store.Put(ctx, bucket, key, contentType, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	s.logger.Info("media uploaded",
		"owner_id", ownerID,
		"kind", upload.Kind,
		"bucket", bucket,
		"key", key,
		"bytes", len(upload.Data),
	)

	return &models.MediaAsset{
		Bucket:    bucket,
		Key:       key,
		PublicURL: url,
	}, nil
}

func (s *mediaService) validate(upload *models.MediaUpload, contentType string) (string, error) {
	switch upload.Kind {
	case models.MediaImage:
		if len(upload.Data) > config.MaxImageBytes {
			return "", fmt.Errorf("%w: image exceeds %d MB limit", domain.ErrValidation, config.MaxImageBytes>>20)
		}
		if !strings.HasPrefix(contentType, "image/") {
			return "", fmt.Errorf("%w: %q is not an image type", domain.ErrValidation, contentType)
		}
		return storage.BucketImages, nil

	case models.MediaAudio:
		if len(upload.Data) > config.MaxAudioBytes {
			return "", fmt.Errorf("%w: audio exceeds %d MB limit", domain.ErrValidation, config.MaxAudioBytes>>20)
		}
		if !audioTypes[contentType] {
			return "", fmt.Errorf("%w: audio must be mp3 or wav, got %q", domain.ErrValidation, contentType)
		}
		return storage.BucketAudio, nil

	case models.MediaVideo:
		if len(upload.Data) > config.MaxVideoBytes {
			return "", fmt.Errorf("%w: video exceeds %d MB limit", domain.ErrValidation, config.MaxVideoBytes>>20)
		}
		if !videoTypes[contentType] {
			return "", fmt.Errorf("%w: unsupported video type %q", domain.ErrValidation, contentType)
		}
		if upload.DurationSeconds <= 0 {
			return "", fmt.Errorf("%w: video duration is required", domain.ErrValidation)
		}
		if upload.DurationSeconds > config.MaxVideoDurationSeconds {
			return "", fmt.Errorf("%w: video exceeds %d second limit", domain.ErrValidation, config.MaxVideoDurationSeconds)
		}
		return storage.BucketVideos, nil

	default:
		return "", fmt.Errorf("%w: unknown media kind %q", domain.ErrValidation, upload.Kind)
	}
}

// normalizeContentType strips parameters like "; charset=binary".
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
