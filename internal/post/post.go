package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned by Find when no post carries the requested slug.
var ErrNotFound = errors.New("post not found")

// InvalidDate is what FormatDate yields for a date string that cannot be parsed.
const InvalidDate = "Invalid Date"

// dateLayouts are tried in order when parsing Post.Date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Decode reads a posts.json document: a JSON array of posts.
func Decode(r io.Reader) ([]Post, error) {
	var posts []Post
	dec := json.NewDecoder(r)
	if err := dec.Decode(&posts); err != nil {
		return nil, fmt.Errorf("decoding posts: %w", err)
	}
	if posts == nil {
		return nil, errors.New("decoding posts: document is not a JSON array")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decoding posts: unexpected data after the posts array")
	}
	return posts, nil
}

// Encode writes posts as an indented posts.json document.
func Encode(w io.Writer, posts []Post) error {
	if posts == nil {
		posts = []Post{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return fmt.Errorf("encoding posts: %w", err)
	}
	return nil
}

// ParseDate interprets a post date. Date-only values are taken as UTC
// midnight. The boolean is false when none of the known layouts match.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Time returns the parsed post date. See ParseDate.
func (p Post) Time() (time.Time, bool) {
	return ParseDate(p.Date)
}

// FormatDate renders a post date in long US form, e.g. "June 1, 2024".
// Unparseable dates are rendered as InvalidDate rather than rejected.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.UTC().Format("January 2, 2006")
}

// HasVideo reports whether any block of the post is a video.
func (p Post) HasVideo() bool {
	for _, b := range p.Content {
		if b.Type == BlockVideo {
			return true
		}
	}
	return false
}

// SortByDate returns a copy of posts ordered newest first. The sort is
// stable, so posts sharing a date keep their feed order. Posts whose date
// cannot be parsed go last.
func SortByDate(posts []Post) []Post {
	keys := make([]time.Time, len(posts))
	valid := make([]bool, len(posts))
	for i, p := range posts {
		keys[i], valid[i] = p.Time()
	}

	idx := make([]int, len(posts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if !valid[i] || !valid[j] {
			return valid[i] && !valid[j]
		}
		return keys[i].After(keys[j])
	})

	out := make([]Post, len(posts))
	for n, i := range idx {
		out[n] = posts[i]
	}
	return out
}

// Find returns the first post whose slug equals slug.
func Find(posts []Post, slug string) (Post, error) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
}

// DuplicateSlugs lists slugs that occur more than once, in first-seen order.
func DuplicateSlugs(posts []Post) []string {
	seen := make(map[string]int, len(posts))
	var dups []string
	for _, p := range posts {
		seen[p.Slug]++
		if seen[p.Slug] == 2 {
			dups = append(dups, p.Slug)
		}
	}
	return dups
}
