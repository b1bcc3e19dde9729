package config

import "time"

// DefaultExcludes are glob patterns skipped when importing Markdown posts.
var DefaultExcludes = []string{
	"drafts/**",
	"_*",
	"README.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteName:        "TechImbue",
		SiteDescription: "Insights on technology, engineering and building products.",
		BlogPath:        "/blog",
		PostsSource:     "blog/posts.json",
		StaticDir:       "public",
		OutputDir:       "dist",
		ContentDir:      "content/posts",
		Include:         []string{"**/*.md"},
		Exclude:         append([]string(nil), DefaultExcludes...),
		Server: ServerConfig{
			Port:         8080,
			FetchTimeout: 10 * time.Second,
			AllowedOrigins: []string{
				"http://localhost:*",
				"http://127.0.0.1:*",
			},
		},
	}
}
