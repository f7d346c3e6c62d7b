package storage

import (
	"context"
)

// Bucket names. Each is public-read; the bucket policy, not the
// application, is what makes published assets world-resolvable.
const (
	BucketImages = "images"
	BucketAudio  = "audio"
	BucketVideos = "videos"
)

// ObjectStore puts binary assets into a public bucket and returns the
// URL they resolve under.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key, contentType string, data []byte) (string, error)
}
