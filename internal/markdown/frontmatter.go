package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// PageMeta is the YAML frontmatter a page body may open with. All
// fields are optional; pages without frontmatter render with defaults.
type PageMeta struct {
	Title string `yaml:"title"`
	Theme string `yaml:"theme"` // style preset name applied to the rendered page
}

// SplitFrontmatter extracts frontmatter metadata and returns the body
// without the delimiters. Bodies that don't start with a frontmatter
// block come back unchanged with zero-value metadata.
func SplitFrontmatter(source []byte) (PageMeta, []byte, error) {
	var meta PageMeta

	if !bytes.HasPrefix(source, []byte("---")) {
		return meta, source, nil
	}

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return PageMeta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta, body, nil
}
