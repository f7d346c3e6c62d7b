package models

import (
	"time"
)

// Folder is an organizational-only grouping node in a per-owner tree.
// Folders drive the dashboard sidebar and never appear in public URLs.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"-" db:"owner_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = top level
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
