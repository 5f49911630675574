package presskit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSiteConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	body := `
name = "Acme Blog"
url = "https://acme.dev"
description = "Notes from Acme"
author = "Acme"
addr = ":8080"
unpublished = ["draft-roadmap"]
analytics_enabled = true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("LoadSiteConfig failed: %v", err)
	}
	if cfg.Name != "Acme Blog" || cfg.URL != "https://acme.dev" || cfg.Addr != ":8080" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Unpublished) != 1 || cfg.Unpublished[0] != "draft-roadmap" {
		t.Errorf("Unpublished = %v", cfg.Unpublished)
	}
	if !cfg.AnalyticsEnabled {
		t.Error("AnalyticsEnabled should be true")
	}
}

func TestLoadSiteConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	if err := os.WriteFile(path, []byte(`name = "From File"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SITE_NAME", "From Env")
	t.Setenv("SITE_URL", "https://env.example/")
	t.Setenv("PREVIEW_PASSWORD", "secret")

	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("LoadSiteConfig failed: %v", err)
	}
	if cfg.Name != "From Env" {
		t.Errorf("Name = %q, env must win over file", cfg.Name)
	}
	if cfg.URL != "https://env.example" {
		t.Errorf("URL = %q, trailing slash must be trimmed", cfg.URL)
	}
	if cfg.PreviewPassword != "secret" {
		t.Errorf("PreviewPassword = %q", cfg.PreviewPassword)
	}
}

func TestLoadSiteConfigMissingFile(t *testing.T) {
	cfg, err := LoadSiteConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file must not error, got %v", err)
	}
	cfg.setDefaults()
	if cfg.Name != "Blog" || cfg.Addr != ":3000" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadSiteConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	if err := os.WriteFile(path, []byte(`name = `), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadSiteConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
