package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Let's configure the website.")
	fmt.Println()

	cfg := DefaultConfig()

	// Reuse an existing posts.json location when one is lying around.
	if _, err := os.Stat("posts.json"); err == nil {
		cfg.PostsSource = "posts.json"
		fmt.Println("Found posts.json in the current directory.")
		fmt.Println()
	}

	prompts := []struct {
		label string
		value *string
	}{
		{"Site name", &cfg.SiteName},
		{"Public site URL (blank if unknown)", &cfg.SiteURL},
		{"Posts feed (path or http(s) URL)", &cfg.PostsSource},
		{"Static assets directory", &cfg.StaticDir},
		{"Output directory for builds", &cfg.OutputDir},
		{"Markdown content directory", &cfg.ContentDir},
	}
	for _, p := range prompts {
		prompt := promptui.Prompt{
			Label:   p.label,
			Default: *p.value,
		}
		answer, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToLower(p.label), err)
		}
		*p.value = strings.TrimSpace(answer)
	}

	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	originsPrompt := promptui.Prompt{
		Label:   "Extra CORS origins for the feed (comma-separated, blank for none)",
		Default: "",
	}
	originsStr, err := originsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("allowed origins: %w", err)
	}
	cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, splitAndTrim(originsStr)...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
