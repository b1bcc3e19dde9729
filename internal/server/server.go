package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/techimbue/website/internal/render"
)

// Config holds server configuration.
type Config struct {
	Port           int
	BlogPath       string   // URL path the blog is mounted under, e.g. "/blog"
	StaticDir      string   // landing page and other static assets; optional
	SiteURL        string   // public origin used for share links; optional
	AllowAll       bool     // allow all CORS origins
	AllowedOrigins []string // CORS origins when AllowAll is false
}

// Server serves the blog pages and the site's static assets.
type Server struct {
	cfg        Config
	renderer   *render.Renderer
	load       render.LoadFunc
	logger     *slog.Logger
	metrics    *metrics
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. load is called once per page request.
func New(cfg Config, renderer *render.Renderer, load render.LoadFunc, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.BlogPath = "/" + strings.Trim(cfg.BlogPath, "/")

	m := newMetrics()
	s := &Server{
		cfg:      cfg,
		renderer: renderer,
		load:     m.instrument(load),
		logger:   logger,
		metrics:  m,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	// Static assets answer every path no route claims, including paths
	// under the blog prefix such as images.
	if s.cfg.StaticDir != "" {
		r.NotFound(http.FileServer(http.Dir(s.cfg.StaticDir)).ServeHTTP)
	}

	blog := func(r chi.Router) {
		r.Use(cors.Handler(s.corsOptions()))
		r.Get("/", s.handleList)
		r.Get("/index.html", s.handleList)
		r.Get("/post.html", s.handleDetail)
		r.Get("/posts.json", s.handleFeed)
		r.Get("/blog.css", handleStylesheet)
	}

	// A blog mounted at the root owns "/" itself.
	if s.cfg.BlogPath == "/" {
		r.Group(blog)
	} else {
		r.Get("/", s.handleRoot)
		r.Route(s.cfg.BlogPath, blog)
	}

	return r
}

func (s *Server) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		opts.AllowedOrigins = []string{"*"}
	}
	return opts
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("website server listening", "addr", addr, "blog", s.cfg.BlogPath)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// handleRoot serves the landing page when the static directory has one and
// sends visitors to the blog otherwise.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.cfg.StaticDir != "" {
		index := filepath.Join(s.cfg.StaticDir, "index.html")
		if info, err := os.Stat(index); err == nil && !info.IsDir() {
			http.ServeFile(w, r, index)
			return
		}
	}
	http.Redirect(w, r, s.cfg.BlogPath+"/", http.StatusFound)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	v := s.renderer.List(r.Context(), s.load)
	s.metrics.rendered("list", listOutcome(v))

	status := http.StatusOK
	if v.Failed {
		status = http.StatusBadGateway
	}

	var buf bytes.Buffer
	if err := s.renderer.WriteList(&buf, v); err != nil {
		s.logger.Error("rendering blog list", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("id")
	v := s.renderer.Detail(r.Context(), slug, s.pageURL(r), s.load)
	s.metrics.rendered("detail", v.State.String())

	status := http.StatusOK
	switch v.State {
	case render.DetailRedirect:
		http.Redirect(w, r, s.renderer.Links().Index(), http.StatusFound)
		return
	case render.DetailNotFound:
		status = http.StatusNotFound
	case render.DetailFailed:
		status = http.StatusBadGateway
	}

	var buf bytes.Buffer
	if err := s.renderer.WriteDetail(&buf, v); err != nil {
		s.logger.Error("rendering blog post", "slug", slug, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

// handleFeed re-publishes the post collection for client-side consumers.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	posts, err := s.load(r.Context())
	if err != nil {
		s.logger.Error("error loading blog posts", "error", err)
		s.metrics.rendered("feed", "failed")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"feed unavailable"}`))
		return
	}
	s.metrics.rendered("feed", "ok")
	json.NewEncoder(w).Encode(posts)
}

func handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(render.Stylesheet))
}

// pageURL is the public URL of the current request, used for share links.
func (s *Server) pageURL(r *http.Request) string {
	if s.cfg.SiteURL != "" {
		return strings.TrimRight(s.cfg.SiteURL, "/") + r.URL.RequestURI()
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
