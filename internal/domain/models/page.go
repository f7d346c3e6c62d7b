package models

import (
	"time"
)

// Page is a slugged Markdown document. A page with a non-nil DeletedAt
// is trashed: excluded from public rendering and the active dashboard
// view, but kept around for restore. (owner_id, slug) is unique across
// active and trashed pages alike.
type Page struct {
	ID        string     `json:"id" db:"id"`
	OwnerID   string     `json:"-" db:"owner_id"`
	Slug      string     `json:"slug" db:"slug"`
	Markdown  string     `json:"markdown" db:"markdown"`
	FolderID  *string    `json:"folder_id" db:"folder_id"` // NULL = uncategorized
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted reports whether the page is in the trash.
func (p *Page) IsDeleted() bool {
	return p.DeletedAt != nil
}
