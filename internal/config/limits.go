package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 100 to fit in PostgreSQL VARCHAR(100) and keep the
	// dashboard sidebar readable.
	MaxFolderNameLength = 100

	// MaxSlugLength is the maximum length for page slugs. Slugs are
	// URL path segments, so anything longer is hostile to share links.
	MaxSlugLength = 200

	// MaxImageBytes is the upload ceiling for image assets.
	MaxImageBytes = 5 << 20 // 5 MB

	// MaxAudioBytes is the upload ceiling for audio assets.
	MaxAudioBytes = 10 << 20 // 10 MB

	// MaxVideoBytes is the upload ceiling for video assets.
	MaxVideoBytes = 10 << 20 // 10 MB

	// MaxVideoDurationSeconds caps inline video length. Duration is
	// declared by the caller before upload; the relay enforces the
	// declared value server-side.
	MaxVideoDurationSeconds = 30
)
