package presskit

import (
	"strings"
	"testing"
	"testing/fstest"
)

func mdFile(body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(body)}
}

func TestLoadPostsParsesFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"welcome.md": mdFile(`+++
title = "Welcome"
slug = "welcome"
date = "2026-02-01"
tags = ["Meta", " go "]
summary = "First post."
published = true
+++

Hello **there**.
`),
	}

	posts, err := LoadPosts(fsys)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	p := posts[0]
	if p.Title != "Welcome" || p.Slug != "welcome" || p.Date != "2026-02-01" {
		t.Errorf("unexpected metadata: %+v", p)
	}
	if !p.Published {
		t.Error("Published should be true")
	}
	if p.Summary != "First post." {
		t.Errorf("Summary = %q", p.Summary)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "meta" || p.Tags[1] != "go" {
		t.Errorf("Tags = %v, want normalized [meta go]", p.Tags)
	}
	if !strings.HasPrefix(p.Content, "Hello **there**.") {
		t.Errorf("Content = %q, front matter should be stripped", p.Content)
	}
}

func TestLoadPostsStripsByteOrderMark(t *testing.T) {
	fsys := fstest.MapFS{
		"bom.md": mdFile("\ufeff+++\ntitle = \"Exported\"\ndate = \"2026-01-01\"\npublished = true\n+++\nbody\n"),
	}
	posts, err := LoadPosts(fsys)
	if err != nil {
		t.Fatalf("LoadPosts failed on BOM-prefixed file: %v", err)
	}
	if posts[0].Slug != "exported" {
		t.Errorf("Slug = %q, want %q", posts[0].Slug, "exported")
	}
}

func TestLoadPostsDerivesSlugFromTitle(t *testing.T) {
	fsys := fstest.MapFS{
		"post.md": mdFile(`+++
title = "Why We Ship Fridays!"
date = "2026-02-01"
published = true
+++
body
`),
	}
	posts, err := LoadPosts(fsys)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}
	if posts[0].Slug != "why-we-ship-fridays" {
		t.Errorf("Slug = %q, want %q", posts[0].Slug, "why-we-ship-fridays")
	}
}

func TestLoadPostsOrdersNewestFirst(t *testing.T) {
	fsys := fstest.MapFS{
		"old.md": mdFile("+++\ntitle = \"Old\"\ndate = \"2026-01-01\"\npublished = true\n+++\nx\n"),
		"new.md": mdFile("+++\ntitle = \"New\"\ndate = \"2026-03-01\"\npublished = true\n+++\nx\n"),
		"mid.md": mdFile("+++\ntitle = \"Mid\"\ndate = \"2026-02-01\"\npublished = true\n+++\nx\n"),
	}
	posts, err := LoadPosts(fsys)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}
	want := []string{"new", "mid", "old"}
	for i, slug := range want {
		if posts[i].Slug != slug {
			t.Errorf("posts[%d].Slug = %q, want %q", i, posts[i].Slug, slug)
		}
	}
}

func TestLoadPostsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no front matter", "just markdown\n"},
		{"unterminated front matter", "+++\ntitle = \"X\"\n"},
		{"missing title", "+++\ndate = \"2026-01-01\"\n+++\nx\n"},
		{"bad date", "+++\ntitle = \"X\"\ndate = \"01/02/2026\"\n+++\nx\n"},
		{"unslugifiable title", "+++\ntitle = \"!!!\"\ndate = \"2026-01-01\"\n+++\nx\n"},
		{"invalid toml", "+++\ntitle = unquoted\n+++\nx\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"bad.md": mdFile(tt.body)}
			if _, err := LoadPosts(fsys); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadPostsDefaultsUnpublished(t *testing.T) {
	fsys := fstest.MapFS{
		"draft.md": mdFile("+++\ntitle = \"Draft\"\ndate = \"2026-01-01\"\n+++\nx\n"),
	}
	posts, err := LoadPosts(fsys)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}
	if posts[0].Published {
		t.Error("posts without a published flag should default to draft")
	}
}
