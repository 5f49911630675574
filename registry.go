package presskit

import (
	"fmt"
	"sort"

	"github.com/a-h/templ"
)

// Entry pairs a post with its pre-rendered body component. The body is
// rendered once at registry build time so request handling never touches
// the markdown pipeline.
type Entry struct {
	Post Post
	Body templ.Component
}

// Registry is the insertion-ordered, immutable mapping from slug to entry,
// plus the set of slugs that are publicly visible. It is built once at
// startup and never mutated afterwards, so concurrent reads need no locking.
type Registry struct {
	entries   map[string]Entry
	order     []string
	published map[string]struct{}
}

// RenderBody converts a post's markdown content into a body component.
// Injected so the registry package does not depend on a concrete renderer.
type RenderBody func(content string) templ.Component

// NewRegistry builds a Registry from posts. Entries keep the given order.
// A post is published when its Published flag is set and its slug is not in
// the unpublish override list. Unpublish entries naming unknown slugs are
// ignored; they are unreachable either way since resolution consults the
// registry first.
func NewRegistry(posts []Post, unpublish []string, render RenderBody) (*Registry, error) {
	r := &Registry{
		entries:   make(map[string]Entry, len(posts)),
		order:     make([]string, 0, len(posts)),
		published: make(map[string]struct{}),
	}
	withheld := make(map[string]struct{}, len(unpublish))
	for _, slug := range unpublish {
		withheld[slug] = struct{}{}
	}
	for _, p := range posts {
		if p.Slug == "" {
			return nil, fmt.Errorf("presskit: post %q has no slug", p.Title)
		}
		if _, dup := r.entries[p.Slug]; dup {
			return nil, fmt.Errorf("presskit: duplicate slug %q", p.Slug)
		}
		p.Link = "/blog/" + p.Slug + "/"
		r.entries[p.Slug] = Entry{Post: p, Body: render(p.Content)}
		r.order = append(r.order, p.Slug)
		if _, held := withheld[p.Slug]; p.Published && !held {
			r.published[p.Slug] = struct{}{}
		}
	}
	return r, nil
}

// Len returns the number of registered posts, published or not.
func (r *Registry) Len() int {
	return len(r.order)
}

// Entry returns the entry for slug regardless of published status.
// Used by the preview surface; public resolution goes through Resolve.
func (r *Registry) Entry(slug string) (Entry, bool) {
	e, ok := r.entries[slug]
	return e, ok
}

// IsPublished reports whether slug is in the published set.
func (r *Registry) IsPublished(slug string) bool {
	_, ok := r.published[slug]
	return ok
}

// Posts returns all published posts in registry order. If tag is non-empty,
// results are filtered to posts carrying that tag (case-insensitive).
func (r *Registry) Posts(tag string) []Post {
	normalized := normalizeTag(tag)
	var posts []Post
	for _, slug := range r.order {
		if _, ok := r.published[slug]; !ok {
			continue
		}
		p := r.entries[slug].Post
		if normalized != "" && !hasTag(p, normalized) {
			continue
		}
		posts = append(posts, p)
	}
	return posts
}

// AllPosts returns every registered post in registry order, drafts included.
func (r *Registry) AllPosts() []Post {
	posts := make([]Post, 0, len(r.order))
	for _, slug := range r.order {
		posts = append(posts, r.entries[slug].Post)
	}
	return posts
}

// Tags returns a sorted, deduplicated slice of all tags from published posts.
func (r *Registry) Tags() []string {
	set := make(map[string]struct{})
	for slug := range r.published {
		for _, t := range r.entries[slug].Post.Tags {
			if tag := normalizeTag(t); tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func hasTag(p Post, normalized string) bool {
	for _, t := range p.Tags {
		if normalizeTag(t) == normalized {
			return true
		}
	}
	return false
}
