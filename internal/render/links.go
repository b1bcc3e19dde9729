package render

import (
	"net/url"
	"strings"
)

// Links builds the URLs that blog pages point at.
type Links struct {
	// Base is the URL path the blog is mounted under, e.g. "/blog".
	Base string
	// Static selects per-post files (posts/<slug>.html) instead of the
	// post.html?id=<slug> form served by the HTTP handler.
	Static bool
}

// Index is the URL of the post list.
func (l Links) Index() string {
	return l.base() + "/index.html"
}

// Post is the URL of the detail view for slug.
func (l Links) Post(slug string) string {
	if l.Static {
		return l.base() + "/posts/" + url.PathEscape(slug) + ".html"
	}
	return l.base() + "/post.html?id=" + url.QueryEscape(slug)
}

// Stylesheet is the URL of the blog stylesheet.
func (l Links) Stylesheet() string {
	return l.base() + "/blog.css"
}

func (l Links) base() string {
	return strings.TrimRight(l.Base, "/")
}

// ShareLinks are the outbound share targets for a post.
type ShareLinks struct {
	Twitter  string
	LinkedIn string
}

// Share builds the share targets for a post title and its public page URL.
func Share(title, pageURL string) ShareLinks {
	return ShareLinks{
		Twitter:  "https://twitter.com/intent/tweet?text=" + encodeComponent(title) + "&url=" + encodeComponent(pageURL),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + encodeComponent(pageURL),
	}
}

// componentUnescaper undoes the query escaping of characters that share
// targets expect verbatim, and spells spaces as %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s for use as a single query value. Only
// A-Z a-z 0-9 and - _ . ! ~ * ' ( ) are left as is.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
