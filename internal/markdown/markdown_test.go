package markdown

import (
	"strings"
	"testing"
)

func TestRender_GFMBasics(t *testing.T) {
	r := NewRenderer()

	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"heading", "# Title", `<h1 id="title">Title</h1>`},
		{"emphasis", "some *emphasis*", "<em>emphasis</em>"},
		{"strikethrough", "~~gone~~", "<del>gone</del>"},
		{"autolink", "see https://example.com now", `<a href="https://example.com">https://example.com</a>`},
		{"task list", "- [x] done", `type="checkbox"`},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"raw html passes through", `<div class="custom">hi</div>`, `<div class="custom">hi</div>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := r.Render([]byte(tc.source))
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !strings.Contains(string(out), tc.want) {
				t.Errorf("output %q does not contain %q", out, tc.want)
			}
		})
	}
}

func TestSplitFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: My Page\ntheme: dark\n---\n\n# Body\n")

	meta, body, err := SplitFrontmatter(source)
	if err != nil {
		t.Fatalf("SplitFrontmatter failed: %v", err)
	}
	if meta.Title != "My Page" {
		t.Errorf("title = %q, want %q", meta.Title, "My Page")
	}
	if meta.Theme != "dark" {
		t.Errorf("theme = %q, want %q", meta.Theme, "dark")
	}
	if strings.Contains(string(body), "---") {
		t.Errorf("body still contains delimiters: %q", body)
	}
	if !strings.Contains(string(body), "# Body") {
		t.Errorf("body lost content: %q", body)
	}
}

func TestSplitFrontmatter_NoBlock(t *testing.T) {
	source := []byte("# Just Markdown\n\nno metadata here\n")

	meta, body, err := SplitFrontmatter(source)
	if err != nil {
		t.Fatalf("SplitFrontmatter failed: %v", err)
	}
	if meta.Title != "" || meta.Theme != "" {
		t.Errorf("meta = %+v, want zero value", meta)
	}
	if string(body) != string(source) {
		t.Errorf("body altered: %q", body)
	}
}

func TestSplitFrontmatter_Malformed(t *testing.T) {
	source := []byte("---\ntitle: [unclosed\n---\nbody")

	_, _, err := SplitFrontmatter(source)
	if err == nil {
		t.Fatal("expected error for malformed frontmatter")
	}
}
