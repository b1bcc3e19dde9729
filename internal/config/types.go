package config

import "time"

// Config is the top-level website configuration, corresponding to website.yml.
type Config struct {
	SiteName        string       `yaml:"site_name" koanf:"site_name"`
	SiteDescription string       `yaml:"site_description" koanf:"site_description"`
	SiteURL         string       `yaml:"site_url" koanf:"site_url"`
	BlogPath        string       `yaml:"blog_path" koanf:"blog_path"`
	PostsSource     string       `yaml:"posts_source" koanf:"posts_source"`
	StaticDir       string       `yaml:"static_dir" koanf:"static_dir"`
	OutputDir       string       `yaml:"output_dir" koanf:"output_dir"`
	ContentDir      string       `yaml:"content_dir" koanf:"content_dir"`
	Include         []string     `yaml:"include" koanf:"include"`
	Exclude         []string     `yaml:"exclude" koanf:"exclude"`
	Server          ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Port            int           `yaml:"port" koanf:"port"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout" koanf:"fetch_timeout"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AllowedOrigins  []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
}
