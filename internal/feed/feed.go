// Package feed loads the blog's posts.json document from disk or over HTTP.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/techimbue/website/internal/post"
)

var (
	// ErrUnavailable means the document could not be read or fetched.
	ErrUnavailable = errors.New("feed unavailable")
	// ErrMalformed means the document was read but is not a posts array.
	ErrMalformed = errors.New("feed malformed")
)

// DefaultTimeout bounds a remote fetch when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxDocumentSize caps how much of a remote document is read.
const maxDocumentSize = 16 << 20

// Loader reads the post collection from a single source. Every call to
// Load goes back to the source; nothing is cached between calls.
type Loader struct {
	source     string
	httpClient *http.Client
}

// NewLoader creates a Loader for source, which is a local path, a file://
// URL, or an http(s) URL. A non-positive timeout selects DefaultTimeout.
func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		source:     source,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Source returns the configured source string.
func (l *Loader) Source() string { return l.source }

// LocalPath returns the filesystem path of the source, or "" when the
// source is remote.
func (l *Loader) LocalPath() string {
	if isRemote(l.source) {
		return ""
	}
	return localPath(l.source)
}

// Load reads and decodes the post collection. Failures wrap ErrUnavailable
// or ErrMalformed so callers can tell them apart with errors.Is.
func (l *Loader) Load(ctx context.Context) ([]post.Post, error) {
	rc, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	posts, err := post.Decode(io.LimitReader(rc, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, l.source, err)
	}
	return posts, nil
}

func (l *Loader) open(ctx context.Context) (io.ReadCloser, error) {
	if !isRemote(l.source) {
		f, err := os.Open(localPath(l.source))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", ErrUnavailable, l.source, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: fetching %s: status %d", ErrUnavailable, l.source, resp.StatusCode)
	}
	return resp.Body, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func localPath(source string) string {
	if strings.HasPrefix(source, "file://") {
		if u, err := url.Parse(source); err == nil {
			return u.Path
		}
	}
	return source
}
