package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/techimbue/website/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog and the landing page over HTTP",
	Long: `Starts an HTTP server that renders the blog list and post pages from the
configured posts source on every request, and serves the landing page's
static assets for every other path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		logger := newLogger()
		renderer, err := newRenderer(cfg, false, logger)
		if err != nil {
			return err
		}
		loader := newLoader(cfg)

		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			BlogPath:       cfg.BlogPath,
			StaticDir:      cfg.StaticDir,
			SiteURL:        cfg.SiteURL,
			AllowAll:       cfg.Server.AllowAllOrigins,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}, renderer, loader.Load, logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "website %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Posts: %s\n", loader.Source())
		fmt.Fprintf(os.Stderr, "  Blog: http://localhost:%d%s/\n", cfg.Server.Port, srv.ServerConfig().BlogPath)
		if cfg.StaticDir != "" {
			fmt.Fprintf(os.Stderr, "  Static: %s\n", cfg.StaticDir)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
