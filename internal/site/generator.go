package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/techimbue/website/internal/post"
	"github.com/techimbue/website/internal/progress"
	"github.com/techimbue/website/internal/render"
)

// SiteGenerator writes the blog as static files: the list page, one page per
// post, the feed, the stylesheet and a search index. The landing page's
// static assets are copied alongside.
type SiteGenerator struct {
	OutputDir string
	StaticDir string // optional
	BlogPath  string // URL path of the blog, e.g. "/blog"

	renderer *render.Renderer
	load     render.LoadFunc
	reporter progress.Reporter
	logger   *slog.Logger
}

// NewSiteGenerator creates a SiteGenerator. The renderer must be built with
// static links so cards point at posts/<slug>.html.
func NewSiteGenerator(renderer *render.Renderer, load render.LoadFunc, outputDir, staticDir, blogPath string) *SiteGenerator {
	return &SiteGenerator{
		OutputDir: outputDir,
		StaticDir: staticDir,
		BlogPath:  blogPath,
		renderer:  renderer,
		load:      load,
		reporter:  progress.Nop{},
		logger:    slog.Default(),
	}
}

// WithReporter sets the progress reporter used by Generate.
func (g *SiteGenerator) WithReporter(r progress.Reporter) *SiteGenerator {
	g.reporter = r
	return g
}

// WithLogger sets the logger used for skipped posts.
func (g *SiteGenerator) WithLogger(l *slog.Logger) *SiteGenerator {
	g.logger = l
	return g
}

// Generate builds the site. The feed is loaded exactly once per call and a
// load failure aborts the build. Returns the number of pages generated.
func (g *SiteGenerator) Generate(ctx context.Context) (int, error) {
	posts, err := g.load(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading posts: %w", err)
	}
	published := g.publishable(posts)
	cached := func(context.Context) ([]post.Post, error) { return published, nil }

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	// Static assets go first so generated blog files win on conflicts.
	if g.StaticDir != "" {
		if err := copyDir(g.StaticDir, g.OutputDir); err != nil {
			return 0, fmt.Errorf("copying static assets: %w", err)
		}
	}

	blogDir := filepath.Join(g.OutputDir, filepath.FromSlash(strings.Trim(g.BlogPath, "/")))
	if err := os.MkdirAll(filepath.Join(blogDir, "posts"), 0o755); err != nil {
		return 0, err
	}

	sorted := post.SortByDate(published)
	g.reporter.Start(len(sorted) + 1)
	defer g.reporter.Finish()

	var buf bytes.Buffer
	if err := g.renderer.WriteList(&buf, g.renderer.List(ctx, cached)); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(blogDir, "index.html"), buf.Bytes(), 0o644); err != nil {
		return 0, err
	}
	pages := 1
	g.reporter.Update(pages, "index.html")

	for _, p := range sorted {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		v := g.renderer.Detail(ctx, p.Slug, g.renderer.PageURL(p.Slug), cached)
		buf.Reset()
		if err := g.renderer.WriteDetail(&buf, v); err != nil {
			return pages, fmt.Errorf("rendering %s: %w", p.Slug, err)
		}
		name := "posts/" + p.Slug + ".html"
		if err := os.WriteFile(filepath.Join(blogDir, filepath.FromSlash(name)), buf.Bytes(), 0o644); err != nil {
			return pages, err
		}
		pages++
		g.reporter.Update(pages, name)
	}

	buf.Reset()
	if err := post.Encode(&buf, posts); err != nil {
		return pages, err
	}
	if err := os.WriteFile(filepath.Join(blogDir, "posts.json"), buf.Bytes(), 0o644); err != nil {
		return pages, err
	}

	if err := os.WriteFile(filepath.Join(blogDir, "blog.css"), []byte(render.Stylesheet), 0o644); err != nil {
		return pages, err
	}

	entries := BuildSearchIndex(sorted, g.renderer.Links())
	if err := WriteSearchIndex(entries, filepath.Join(blogDir, "search-index.json")); err != nil {
		return pages, fmt.Errorf("writing search index: %w", err)
	}

	return pages, nil
}

// publishable filters posts down to those that get a page of their own, in
// feed order. A slug that cannot name a file is skipped, and for a repeated
// slug the first post in the feed wins, as it does when serving.
func (g *SiteGenerator) publishable(posts []post.Post) []post.Post {
	seen := make(map[string]bool, len(posts))
	out := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		if !safeSlug(p.Slug) {
			g.logger.Warn("skipping post with unusable slug", "slug", p.Slug, "title", p.Title)
			continue
		}
		if seen[p.Slug] {
			g.logger.Warn("skipping duplicate slug", "slug", p.Slug, "title", p.Title)
			continue
		}
		seen[p.Slug] = true
		out = append(out, p)
	}
	return out
}

// safeSlug reports whether slug can name a file inside the posts directory.
func safeSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}

// copyDir copies the regular files under src into dst, preserving layout.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
