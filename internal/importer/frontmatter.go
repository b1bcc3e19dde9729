package importer

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of a Markdown post.
type FrontMatter struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	Date        string   `yaml:"date"`
	Excerpt     string   `yaml:"excerpt"`
	Tags        []string `yaml:"tags"`
	LinkedInURL string   `yaml:"linkedin_url"`
	Draft       bool     `yaml:"draft"`
}

// splitFrontMatter separates a leading "---" delimited YAML block from the
// Markdown body. A document without an opening delimiter is all body.
func splitFrontMatter(content, name string) (FrontMatter, string, error) {
	var fm FrontMatter

	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, content, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return fm, "", fmt.Errorf("invalid front matter in %s: missing closing ---", name)
	}

	header := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, "", fmt.Errorf("parsing front matter in %s: %w", name, err)
	}

	return fm, strings.Join(lines[end+1:], "\n"), nil
}
