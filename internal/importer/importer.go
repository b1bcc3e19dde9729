// Package importer turns a directory of Markdown posts into a posts.json feed.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/techimbue/website/internal/post"
	"github.com/techimbue/website/internal/progress"
	"github.com/techimbue/website/internal/walker"
)

// ErrDuplicateSlug is returned when two sources resolve to the same slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

// excerptLength is the rune budget of a derived excerpt.
const excerptLength = 160

var (
	datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)
	slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Importer reads Markdown sources from ContentDir.
type Importer struct {
	ContentDir string
	Include    []string
	Exclude    []string

	reporter progress.Reporter
	logger   *slog.Logger
}

// New creates an Importer for contentDir with include/exclude globs.
func New(contentDir string, include, exclude []string) *Importer {
	return &Importer{
		ContentDir: contentDir,
		Include:    include,
		Exclude:    exclude,
		reporter:   progress.Nop{},
		logger:     slog.Default(),
	}
}

// WithReporter sets the progress reporter used by Import.
func (im *Importer) WithReporter(r progress.Reporter) *Importer {
	im.reporter = r
	return im
}

// WithLogger sets the logger used for per-file diagnostics.
func (im *Importer) WithLogger(l *slog.Logger) *Importer {
	im.logger = l
	return im
}

// Import parses every matching source and returns the posts newest first.
// Drafts are left out. Two sources with the same slug fail the import.
func (im *Importer) Import(ctx context.Context) ([]post.Post, error) {
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: im.ContentDir,
		Include: im.Include,
		Exclude: im.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", im.ContentDir, err)
	}

	im.reporter.Start(len(files))
	defer im.reporter.Finish()

	var posts []post.Post
	sources := make(map[string]string, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		im.reporter.Update(i+1, f.RelPath)

		src, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		p, draft, err := ParsePost(src, f.RelPath)
		if err != nil {
			return nil, err
		}
		if draft {
			im.logger.Debug("skipping draft", "file", f.RelPath)
			continue
		}
		if p.Date == "" {
			p.Date = f.ModTime.UTC().Format("2006-01-02")
		}
		if _, ok := post.ParseDate(p.Date); !ok {
			im.logger.Warn("post date is not parseable", "file", f.RelPath, "date", p.Date)
		}

		if prev, dup := sources[p.Slug]; dup {
			return nil, fmt.Errorf("%w %q in %s and %s", ErrDuplicateSlug, p.Slug, prev, f.RelPath)
		}
		sources[p.Slug] = f.RelPath
		posts = append(posts, p)
	}

	return post.SortByDate(posts), nil
}

// ParsePost converts one Markdown source into a post. name is the source's
// relative path and provides the fallback slug, date and title. The second
// result reports a draft.
func ParsePost(src []byte, name string) (post.Post, bool, error) {
	fm, body, err := splitFrontMatter(string(src), name)
	if err != nil {
		return post.Post{}, false, err
	}

	doc := convert([]byte(body))

	stem := strings.TrimSuffix(path.Base(filepath.ToSlash(name)), path.Ext(name))
	var fileDate string
	if m := datePrefix.FindStringSubmatch(stem); m != nil {
		fileDate, stem = m[1], m[2]
	}

	p := post.Post{
		Slug:        strings.TrimSpace(fm.Slug),
		Title:       strings.TrimSpace(fm.Title),
		Author:      strings.TrimSpace(fm.Author),
		Date:        strings.TrimSpace(fm.Date),
		Excerpt:     strings.TrimSpace(fm.Excerpt),
		Tags:        fm.Tags,
		Content:     doc.Blocks,
		LinkedInURL: strings.TrimSpace(fm.LinkedInURL),
	}

	if p.Slug == "" {
		p.Slug = Slugify(stem)
	}
	if p.Slug == "" {
		return post.Post{}, false, fmt.Errorf("%s: cannot derive a slug", name)
	}
	if p.Title == "" {
		p.Title = doc.Title
	}
	if p.Title == "" {
		p.Title = TitleFromSlug(stem)
	}
	if p.Date == "" {
		p.Date = fileDate
	}
	if p.Excerpt == "" {
		p.Excerpt = deriveExcerpt(doc.Blocks)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Content == nil {
		p.Content = []post.ContentBlock{}
	}

	return p, fm.Draft, nil
}

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	return strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// TitleFromSlug turns "my-first_post" into "My First Post".
func TitleFromSlug(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// deriveExcerpt uses the first paragraph, cut at a word boundary.
func deriveExcerpt(blocks []post.ContentBlock) string {
	for _, b := range blocks {
		if b.Type != post.BlockParagraph || b.Text == "" {
			continue
		}
		runes := []rune(b.Text)
		if len(runes) <= excerptLength {
			return b.Text
		}
		cut := string(runes[:excerptLength])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return strings.TrimRight(cut, " ,.;:") + "…"
	}
	return ""
}

// WriteFeed writes posts to path as an indented posts.json document,
// replacing the file atomically.
func WriteFeed(path string, posts []post.Post) error {
	var buf bytes.Buffer
	if err := post.Encode(&buf, posts); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".posts-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Summary counts the posts per tag, most used first, for the import report.
func Summary(posts []post.Post) []TagCount {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Posts: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Posts != out[j].Posts {
			return out[i].Posts > out[j].Posts
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// TagCount is one line of the import report.
type TagCount struct {
	Tag   string
	Posts int
}

// Latest is the date of the newest post, or the zero time.
func Latest(posts []post.Post) time.Time {
	var latest time.Time
	for _, p := range posts {
		if t, ok := p.Time(); ok && t.After(latest) {
			latest = t
		}
	}
	return latest
}
