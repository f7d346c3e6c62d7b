package models

// SidebarItemKind discriminates sidebar entries.
type SidebarItemKind string

const (
	SidebarFolder SidebarItemKind = "folder"
	SidebarPage   SidebarItemKind = "page"
	SidebarTrash  SidebarItemKind = "trash"
)

// SidebarItem is one row of the dashboard sidebar. Items arrive in
// display order; Level is the indent depth (0 = flush left).
type SidebarItem struct {
	Kind  SidebarItemKind `json:"kind"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"` // folder name
	Slug  string          `json:"slug,omitempty"` // page slug
	Level int             `json:"level"`
}
