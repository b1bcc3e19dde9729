package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techimbue/website/internal/importer"
	"github.com/techimbue/website/internal/printer"
	"github.com/techimbue/website/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert Markdown posts into posts.json",
	Long: `Reads every Markdown file in the content directory that matches the
include patterns, converts its front matter and body into a post, and writes
the collection to the posts source file, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("content"); dir != "" {
			cfg.ContentDir = dir
		}
		dest, _ := cmd.Flags().GetString("output")
		if dest == "" {
			dest = newLoader(cfg).LocalPath()
		}
		if dest == "" {
			return fmt.Errorf("posts_source %q is remote; pass --output to choose where to write the feed", cfg.PostsSource)
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		im := importer.New(cfg.ContentDir, cfg.Include, cfg.Exclude).
			WithReporter(progress.NewReporter("Importing posts")).
			WithLogger(newLogger())

		posts, err := im.Import(context.Background())
		if err != nil {
			return fmt.Errorf("importing %s: %w", cfg.ContentDir, err)
		}

		printer.Info("Imported %d posts from %s", len(posts), cfg.ContentDir)
		if latest := importer.Latest(posts); !latest.IsZero() {
			printer.Detail("Latest: %s", latest.Format("January 2, 2006"))
		}
		for _, tc := range importer.Summary(posts) {
			printer.Detail("#%s: %d", tc.Tag, tc.Posts)
		}

		if dryRun {
			printer.Warning("Dry run: feed not written")
			return nil
		}
		if err := importer.WriteFeed(dest, posts); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		printer.Success("Wrote %s", dest)
		return nil
	},
}

func init() {
	importCmd.Flags().String("content", "", "directory of Markdown posts (overrides config)")
	importCmd.Flags().StringP("output", "o", "", "feed file to write (defaults to posts_source)")
	importCmd.Flags().Bool("dry-run", false, "parse and report without writing the feed")
	rootCmd.AddCommand(importCmd)
}
