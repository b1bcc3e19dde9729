package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/techimbue/website/internal/config"
	"github.com/techimbue/website/internal/feed"
	"github.com/techimbue/website/internal/render"
)

// loadConfig loads and validates the config, providing a user-friendly error.
// A .env file in the working directory seeds WEBSITE_* overrides without
// replacing variables already set.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("reading .env: %w", err)
		}
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `website init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger returns a text logger on stderr; --verbose enables debug output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newRenderer builds the page renderer for the configured site.
func newRenderer(cfg *config.Config, static bool, logger *slog.Logger) (*render.Renderer, error) {
	return render.New(render.Site{
		Name:        cfg.SiteName,
		Description: cfg.SiteDescription,
		URL:         cfg.SiteURL,
	}, render.Links{Base: cfg.BlogPath, Static: static}, logger)
}

// newLoader builds the feed loader for the configured posts source.
func newLoader(cfg *config.Config) *feed.Loader {
	return feed.NewLoader(cfg.PostsSource, cfg.Server.FetchTimeout)
}
