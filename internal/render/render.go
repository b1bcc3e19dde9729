// Package render turns the post collection into the blog's HTML pages.
package render

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"github.com/techimbue/website/internal/post"
)

// User-visible placeholder messages.
const (
	NoPostsMessage     = "No posts yet. Check back soon!"
	ListErrorMessage   = "Error loading posts. Please try again later."
	NotFoundMessage    = "Post not found"
	DetailErrorMessage = "Error loading post. Please try again later."
)

// LoadFunc fetches the post collection. feed.Loader.Load satisfies it.
type LoadFunc func(ctx context.Context) ([]post.Post, error)

// Site describes the website the blog belongs to.
type Site struct {
	Name        string
	Description string
	// URL is the public origin, e.g. "https://techimbue.com". Optional.
	URL string
}

// Meta is the document metadata of a rendered page.
type Meta struct {
	Title         string
	Description   string
	OGTitle       string
	OGDescription string
}

// Card is the summary view of one post in the list.
type Card struct {
	Post     post.Post
	Date     string
	HasVideo bool
	URL      string
	Delay    string
}

// ListView is the result of a list render pass. Exactly one of Cards,
// Empty or Failed describes the content region.
type ListView struct {
	Meta   Meta
	Cards  []Card
	Empty  bool
	Failed bool
}

// DetailState is the outcome of a detail render pass.
type DetailState int

const (
	DetailFound DetailState = iota
	DetailNotFound
	DetailFailed
	// DetailRedirect means no slug was requested; the caller should send
	// the client to the list view.
	DetailRedirect
)

func (s DetailState) String() string {
	switch s {
	case DetailFound:
		return "found"
	case DetailNotFound:
		return "not_found"
	case DetailFailed:
		return "failed"
	case DetailRedirect:
		return "redirect"
	default:
		return fmt.Sprintf("DetailState(%d)", int(s))
	}
}

// DetailView is the result of a detail render pass.
type DetailView struct {
	State   DetailState
	Meta    Meta
	Post    post.Post
	Date    string
	Body    template.HTML
	Share   ShareLinks
	Message string
}

// Renderer produces blog pages. It holds no per-request state and is safe
// for concurrent use.
type Renderer struct {
	site   Site
	links  Links
	logger *slog.Logger
	tmpl   *template.Template
}

// New creates a Renderer. A nil logger falls back to slog.Default().
func New(site Site, links Links, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{site: site, links: links, logger: logger}

	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"links": func() Links { return r.links },
		"site":  func() Site { return r.site },
	}).Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Links returns the link builder the renderer was created with.
func (r *Renderer) Links() Links { return r.links }

// List loads the collection and builds the list view.
func (r *Renderer) List(ctx context.Context, load LoadFunc) ListView {
	v := ListView{Meta: r.listMeta()}

	posts, err := load(ctx)
	if err != nil {
		r.logger.Error("error loading blog posts", "error", err)
		v.Failed = true
		return v
	}
	if len(posts) == 0 {
		v.Empty = true
		return v
	}

	v.Cards = r.Cards(posts)
	return v
}

// Cards orders posts newest first and derives their summary views.
func (r *Renderer) Cards(posts []post.Post) []Card {
	sorted := post.SortByDate(posts)
	cards := make([]Card, len(sorted))
	for i, p := range sorted {
		cards[i] = Card{
			Post:     p,
			Date:     post.FormatDate(p.Date),
			HasVideo: p.HasVideo(),
			URL:      r.links.Post(p.Slug),
			Delay:    fmt.Sprintf("%.1fs", float64(i)*0.1),
		}
	}
	return cards
}

// Detail builds the detail view for slug. An empty slug short-circuits to
// DetailRedirect without calling load. pageURL is the public URL of the
// page and parameterizes the share links.
func (r *Renderer) Detail(ctx context.Context, slug, pageURL string, load LoadFunc) DetailView {
	if slug == "" {
		return DetailView{State: DetailRedirect}
	}

	posts, err := load(ctx)
	if err != nil {
		r.logger.Error("error loading blog post", "slug", slug, "error", err)
		return r.failure(DetailFailed, DetailErrorMessage)
	}

	p, err := post.Find(posts, slug)
	if err != nil {
		r.logger.Debug("blog post not found", "slug", slug)
		return r.failure(DetailNotFound, NotFoundMessage)
	}

	return DetailView{
		State: DetailFound,
		Meta: Meta{
			Title:         p.Title + " | " + r.site.Name + " Blog",
			Description:   p.Excerpt,
			OGTitle:       p.Title + " | " + r.site.Name,
			OGDescription: p.Excerpt,
		},
		Post:  p,
		Date:  post.FormatDate(p.Date),
		Body:  RenderBody(p.Content),
		Share: Share(p.Title, pageURL),
	}
}

// PageURL is the public URL of the detail view for slug, or "" when the
// site URL is unknown.
func (r *Renderer) PageURL(slug string) string {
	if r.site.URL == "" {
		return ""
	}
	return trimSlash(r.site.URL) + r.links.Post(slug)
}

// WriteList renders a full list page.
func (r *Renderer) WriteList(w io.Writer, v ListView) error {
	return r.tmpl.ExecuteTemplate(w, "list", v)
}

// WriteDetail renders a full detail page. Redirect views have no markup.
func (r *Renderer) WriteDetail(w io.Writer, v DetailView) error {
	if v.State == DetailRedirect {
		return errors.New("redirect view has no page")
	}
	return r.tmpl.ExecuteTemplate(w, "detail", v)
}

func (r *Renderer) listMeta() Meta {
	title := "Blog | " + r.site.Name
	return Meta{
		Title:         title,
		Description:   r.site.Description,
		OGTitle:       title,
		OGDescription: r.site.Description,
	}
}

func (r *Renderer) failure(state DetailState, message string) DetailView {
	return DetailView{
		State:   state,
		Meta:    r.listMeta(),
		Message: message,
	}
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
