package presskit

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const frontMatterDelim = "+++"

type frontMatter struct {
	Title     string   `toml:"title"`
	Slug      string   `toml:"slug"`
	Date      string   `toml:"date"`
	Tags      []string `toml:"tags"`
	Summary   string   `toml:"summary"`
	Published bool     `toml:"published"`
}

// LoadPosts reads every *.md file in fsys and parses it into a Post.
// Files carry Hugo-style TOML front matter between +++ delimiters; the
// remainder of the file is the markdown body. Results are ordered newest
// first, ties broken by slug, so the registry order is deterministic
// regardless of filesystem iteration order.
func LoadPosts(fsys fs.FS) ([]Post, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("presskit: read %s: %w", name, err)
		}
		p, err := parsePost(string(raw))
		if err != nil {
			return nil, fmt.Errorf("presskit: parse %s: %w", name, err)
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

func parsePost(raw string) (Post, error) {
	raw = strings.TrimLeft(raw, "\uFEFF\n\r")
	if !strings.HasPrefix(raw, frontMatterDelim) {
		return Post{}, fmt.Errorf("missing front matter")
	}
	rest := raw[len(frontMatterDelim):]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		return Post{}, fmt.Errorf("unterminated front matter")
	}
	meta := rest[:end]
	body := rest[end+len(frontMatterDelim)+1:]
	body = strings.TrimLeft(body, "\n\r")

	var fm frontMatter
	if err := toml.Unmarshal([]byte(meta), &fm); err != nil {
		return Post{}, err
	}
	if fm.Title == "" {
		return Post{}, fmt.Errorf("title is required")
	}
	slug := fm.Slug
	if slug == "" {
		slug = Slugify(fm.Title)
	}
	if slug == "" {
		return Post{}, fmt.Errorf("cannot derive a slug from title %q", fm.Title)
	}
	date := fm.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return Post{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}
	tags := make([]string, 0, len(fm.Tags))
	for _, t := range fm.Tags {
		if tag := normalizeTag(t); tag != "" {
			tags = append(tags, tag)
		}
	}
	return Post{
		Title:     fm.Title,
		Slug:      slug,
		Date:      date,
		Tags:      tags,
		Summary:   fm.Summary,
		Content:   body,
		Published: fm.Published,
	}, nil
}
