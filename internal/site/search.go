package site

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/techimbue/website/internal/post"
	"github.com/techimbue/website/internal/render"
)

// maxSearchContent caps the body text stored per entry.
const maxSearchContent = 2000

// SearchEntry represents a single searchable post.
type SearchEntry struct {
	Slug    string   `json:"slug"`
	Path    string   `json:"path"`
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Tags    []string `json:"tags"`
	Content string   `json:"content"`
}

// BuildSearchIndex builds one entry per post, in the order given.
func BuildSearchIndex(posts []post.Post, links render.Links) []SearchEntry {
	entries := make([]SearchEntry, 0, len(posts))
	for _, p := range posts {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		entries = append(entries, SearchEntry{
			Slug:    p.Slug,
			Path:    links.Post(p.Slug),
			Title:   p.Title,
			Excerpt: p.Excerpt,
			Tags:    tags,
			Content: searchText(p.Content),
		})
	}
	return entries
}

// searchText flattens the textual blocks of a post into one line.
func searchText(blocks []post.ContentBlock) string {
	var parts []string
	for _, b := range blocks {
		switch b.Type {
		case post.BlockParagraph, post.BlockHeading, post.BlockQuote:
			parts = append(parts, b.Text)
		case post.BlockList:
			parts = append(parts, b.Items...)
		case post.BlockVideo, post.BlockImage:
			if b.Caption != "" {
				parts = append(parts, b.Caption)
			}
		}
	}
	content := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if len(content) > maxSearchContent {
		content = truncateUTF8(content, maxSearchContent)
	}
	return content
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
