package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/techimbue/website/internal/printer"
	"github.com/techimbue/website/internal/progress"
	"github.com/techimbue/website/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the blog into static HTML files",
	Long: `Renders the blog list, one page per post, the feed, the stylesheet and a
search index into the output directory, next to a copy of the landing page's
static assets. With --watch the site is rebuilt whenever the posts source or
the static directory changes.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output directory (overrides config)")
	buildCmd.Flags().BoolP("watch", "w", false, "rebuild on changes to the posts source or static directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	watch, _ := cmd.Flags().GetBool("watch")

	logger := newLogger()
	renderer, err := newRenderer(cfg, true, logger)
	if err != nil {
		return err
	}
	loader := newLoader(cfg)

	gen := site.NewSiteGenerator(renderer, loader.Load, cfg.OutputDir, cfg.StaticDir, cfg.BlogPath).
		WithLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	pages, err := gen.WithReporter(progress.NewReporter("Building blog")).Generate(ctx)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	printer.Success("Built %d pages into %s in %s", pages, filepath.Join(cfg.OutputDir, cfg.BlogPath), time.Since(start).Round(time.Millisecond))

	if !watch {
		return nil
	}

	var paths []string
	if p := loader.LocalPath(); p != "" {
		paths = append(paths, p)
	} else {
		printer.Warning("posts source %s is remote; only the static directory is watched", loader.Source())
	}
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			paths = append(paths, cfg.StaticDir)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("nothing to watch: posts source is remote and no static directory exists")
	}

	// Rebuilds are quiet; the watcher logs their outcome.
	gen.WithReporter(progress.Nop{})
	w, err := site.NewWatcher(paths, func(ctx context.Context) error {
		_, err := gen.Generate(ctx)
		return err
	})
	if err != nil {
		return err
	}
	w.Logger = logger

	printer.Info("Watching %s for changes (Ctrl+C to stop)", strings.Join(paths, ", "))
	return w.Run(ctx)
}
