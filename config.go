package presskit

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// SiteConfig holds all configuration for a presskit site.
type SiteConfig struct {
	Name        string `toml:"name"`        // Site name (default "Blog")
	URL         string `toml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `toml:"description"` // Site description for RSS and meta tags
	Author      string `toml:"author"`      // Author name for JSON-LD

	Addr string `toml:"addr"` // Listen address (default ":3000")

	// Unpublished lists slugs withheld from publication regardless of the
	// published flag in their front matter.
	Unpublished []string `toml:"unpublished"`

	AnalyticsEnabled      bool   `toml:"analytics_enabled"`
	AnalyticsDatabasePath string `toml:"analytics_database_path"`
	AnalyticsRetentionDays int   `toml:"analytics_retention_days"`

	PreviewPassword string `toml:"-"` // Required for draft preview: set via env
	SessionSecret   string `toml:"-"` // Required for draft preview: set via env
	CookieSecure    bool   `toml:"cookie_secure"`

	StatsCacheTTL time.Duration `toml:"-"` // Stats cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetentionDays == 0 {
		c.AnalyticsRetentionDays = 365
	}
	if c.StatsCacheTTL == 0 {
		c.StatsCacheTTL = 5 * time.Minute
	}
}

// LoadSiteConfig reads a site.toml file and applies environment variable
// overrides. A missing file is not an error; env vars alone are enough to
// configure a site.
func LoadSiteConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("presskit: parse %s: %w", path, err)
		}
	}
	if v := os.Getenv("SITE_NAME"); v != "" {
		cfg.Name = v
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.URL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv("SITE_DESCRIPTION"); v != "" {
		cfg.Description = v
	}
	if v := os.Getenv("SITE_AUTHOR"); v != "" {
		cfg.Author = v
	}
	if v := os.Getenv("SITE_ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.PreviewPassword = os.Getenv("PREVIEW_PASSWORD")
	cfg.SessionSecret = os.Getenv("PREVIEW_SESSION_SECRET")
	if strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true") {
		cfg.CookieSecure = true
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithRenderer replaces the markdown body renderer used at registry build time.
func WithRenderer(render RenderBody) Option {
	return func(a *App) {
		a.render = render
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("presskit: required environment variable %s is not set", key)
	}
	return v
}
