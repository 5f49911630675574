package views

import (
	"context"
	"strings"
	"testing"

	"github.com/fenlow/presskit"
	"github.com/fenlow/presskit/markdown"
)

func TestHomeContainsSiteNameAndPosts(t *testing.T) {
	cfg := presskit.SiteConfig{Name: "Acme", URL: "https://acme.dev", Description: "Notes"}
	posts := []presskit.Post{
		{Slug: "a", Title: "First post", Date: "2026-01-01", Link: "/blog/a/", Summary: "s"},
	}

	var b strings.Builder
	if err := Home(cfg, posts).Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Acme") {
		t.Errorf("missing site name: %s", out)
	}
	if !strings.Contains(out, "First post") || !strings.Contains(out, `href="/blog/a/"`) {
		t.Errorf("missing post link: %s", out)
	}
}

func TestPostEscapesTitleAndShowsDraftBanner(t *testing.T) {
	cfg := presskit.SiteConfig{Name: "Acme", URL: "https://acme.dev"}
	entry := presskit.Entry{
		Post: presskit.Post{Slug: "x", Title: `<Danger> & Co`, Date: "2026-01-01"},
		Body: markdown.Markdown("body text"),
	}

	var b strings.Builder
	if err := Post(cfg, entry, nil, true).Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := b.String()
	if strings.Contains(out, "<Danger>") {
		t.Errorf("title not escaped: %s", out)
	}
	if !strings.Contains(out, "&lt;Danger&gt;") {
		t.Errorf("escaped title missing: %s", out)
	}
	if !strings.Contains(out, "draft-banner") {
		t.Errorf("draft banner missing: %s", out)
	}
	if !strings.Contains(out, "body text") {
		t.Errorf("body missing: %s", out)
	}
}

func TestPostWithoutDraftBanner(t *testing.T) {
	cfg := presskit.SiteConfig{Name: "Acme", URL: "https://acme.dev"}
	entry := presskit.Entry{
		Post: presskit.Post{Slug: "x", Title: "T", Date: "2026-01-01"},
		Body: markdown.Markdown("b"),
	}

	var b strings.Builder
	if err := Post(cfg, entry, nil, false).Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(b.String(), "draft-banner") {
		t.Error("published posts must not show the draft banner")
	}
}

func TestNotFound(t *testing.T) {
	var b strings.Builder
	if err := NotFound(presskit.SiteConfig{Name: "Acme"}).Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(b.String(), "404") {
		t.Errorf("missing 404 marker: %s", b.String())
	}
}

func TestDefaultsComplete(t *testing.T) {
	v := Defaults(presskit.SiteConfig{Name: "Acme"})
	if v.Home == nil || v.BlogIndex == nil || v.BlogIndexPartial == nil || v.Post == nil ||
		v.PreviewLogin == nil || v.PreviewDashboard == nil || v.NotFound == nil || v.ServerError == nil {
		t.Fatal("Defaults must populate every view func")
	}
}
