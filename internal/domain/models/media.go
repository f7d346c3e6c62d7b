package models

// MediaKind identifies which bucket and validation policy an upload
// falls under.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

// MediaUpload is a validated upload headed for object storage.
type MediaUpload struct {
	Kind            MediaKind
	ContentType     string
	Data            []byte
	DurationSeconds float64 // caller-measured, only meaningful for video
}

// MediaAsset is the stored result of a successful upload.
type MediaAsset struct {
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	PublicURL string `json:"url"`
}
