// Package views provides the default templ components for a presskit site.
// Components are built with templ.ComponentFunc and write HTML directly;
// sites wanting full control supply their own ViewFuncs instead.
package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/fenlow/presskit"
	"github.com/fenlow/presskit/markdown"
)

// Defaults returns a complete ViewFuncs set rendering a minimal, unstyled
// but functional site for cfg.
func Defaults(cfg presskit.SiteConfig) presskit.ViewFuncs {
	return presskit.ViewFuncs{
		Home: func(posts []presskit.Post, siteURL string) templ.Component {
			return Home(cfg, posts)
		},
		BlogIndex: func(posts []presskit.Post, activeTag string, tags []string, siteURL string) templ.Component {
			return BlogIndex(cfg, posts, activeTag, tags)
		},
		BlogIndexPartial: func(posts []presskit.Post, activeTag string, tags []string) templ.Component {
			return postList(posts, activeTag)
		},
		Post: func(entry presskit.Entry, related []presskit.Post, siteURL string, draft bool) templ.Component {
			return Post(cfg, entry, related, draft)
		},
		PreviewLogin:     PreviewLogin,
		PreviewDashboard: func(posts []presskit.Post, csrfToken string) templ.Component { return PreviewDashboard(cfg, posts, csrfToken) },
		NotFound:         func() templ.Component { return NotFound(cfg) },
		ServerError:      func() templ.Component { return ServerError(cfg) },
	}
}

func component(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(w)
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

func writeShell(w io.Writer, cfg presskit.SiteConfig, meta presskit.PageMeta, jsonLD string, body func(w io.Writer) error) error {
	css, _ := markdown.StylesheetCSS()
	fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	fmt.Fprintf(w, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
	fmt.Fprintf(w, `<title>%s</title>`, esc(meta.Title))
	if meta.Description != "" {
		fmt.Fprintf(w, `<meta name="description" content="%s">`, esc(meta.Description))
	}
	if meta.URL != "" {
		fmt.Fprintf(w, `<link rel="canonical" href="%s">`, esc(meta.URL))
		fmt.Fprintf(w, `<meta property="og:url" content="%s">`, esc(meta.URL))
	}
	fmt.Fprintf(w, `<meta property="og:title" content="%s">`, esc(meta.Title))
	if meta.OGType != "" {
		fmt.Fprintf(w, `<meta property="og:type" content="%s">`, esc(meta.OGType))
	}
	fmt.Fprintf(w, `<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml">`, esc(cfg.Name))
	if jsonLD != "" {
		fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, jsonLD)
	}
	fmt.Fprintf(w, `<style>%s</style>`, css)
	fmt.Fprintf(w, `<link rel="stylesheet" href="/public/site.css">`)
	fmt.Fprintf(w, `</head><body><header><nav><a href="/">%s</a> <a href="/blog/">Blog</a></nav></header><main>`, esc(cfg.Name))
	if err := body(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, `</main><footer><p>%s</p></footer></body></html>`, esc(cfg.Name))
	return err
}

// Home renders the landing page: site intro plus the latest posts.
func Home(cfg presskit.SiteConfig, posts []presskit.Post) templ.Component {
	return component(func(w io.Writer) error {
		meta := presskit.PageMeta{
			Title:       cfg.Name,
			Description: cfg.Description,
			URL:         presskit.BuildURL(cfg.URL),
			OGType:      "website",
		}
		return writeShell(w, cfg, meta, presskit.WebsiteJsonLD(cfg), func(w io.Writer) error {
			fmt.Fprintf(w, `<h1>%s</h1>`, esc(cfg.Name))
			if cfg.Description != "" {
				fmt.Fprintf(w, `<p>%s</p>`, esc(cfg.Description))
			}
			latest := posts
			if len(latest) > 5 {
				latest = latest[:5]
			}
			return writePostList(w, latest)
		})
	})
}

// BlogIndex renders the full post listing with tag filters.
func BlogIndex(cfg presskit.SiteConfig, posts []presskit.Post, activeTag string, tags []string) templ.Component {
	return component(func(w io.Writer) error {
		meta := presskit.PageMeta{
			Title:       "Blog - " + cfg.Name,
			Description: cfg.Description,
			URL:         presskit.BuildURL(cfg.URL, "blog"),
			OGType:      "website",
		}
		return writeShell(w, cfg, meta, "", func(w io.Writer) error {
			fmt.Fprint(w, `<h1>Blog</h1><div class="tags">`)
			fmt.Fprint(w, `<a href="/blog/">all</a>`)
			for _, t := range tags {
				class := ""
				if t == activeTag {
					class = ` class="active"`
				}
				fmt.Fprintf(w, ` <a href="/blog/?tag=%s"%s>%s</a>`, presskit.PathEscape(t), class, esc(t))
			}
			fmt.Fprint(w, `</div>`)
			return writePostList(w, posts)
		})
	})
}

func postList(posts []presskit.Post, activeTag string) templ.Component {
	return component(func(w io.Writer) error {
		return writePostList(w, posts)
	})
}

func writePostList(w io.Writer, posts []presskit.Post) error {
	if len(posts) == 0 {
		_, err := fmt.Fprint(w, `<p>No posts yet.</p>`)
		return err
	}
	fmt.Fprint(w, `<ul class="posts">`)
	for _, p := range posts {
		fmt.Fprintf(w, `<li><a href="%s">%s</a> <time datetime="%s">%s</time>`,
			esc(p.Link), esc(p.Title), esc(p.Date), esc(p.Date))
		if p.Summary != "" {
			fmt.Fprintf(w, `<p>%s</p>`, esc(p.Summary))
		}
		fmt.Fprint(w, `</li>`)
	}
	_, err := fmt.Fprint(w, `</ul>`)
	return err
}

// Post renders a single article page. Drafts get a banner so editors see
// at a glance that the page is not public.
func Post(cfg presskit.SiteConfig, entry presskit.Entry, related []presskit.Post, draft bool) templ.Component {
	return component(func(w io.Writer) error {
		p := entry.Post
		meta := presskit.PageMeta{
			Title:       p.Title + " - " + cfg.Name,
			Description: p.Summary,
			URL:         presskit.BuildURL(cfg.URL, "blog", p.Slug),
			OGType:      "article",
		}
		return writeShell(w, cfg, meta, presskit.BlogPostingJsonLD(p, cfg), func(w io.Writer) error {
			if draft {
				fmt.Fprint(w, `<div class="draft-banner">Draft preview. This post is not published.</div>`)
			}
			fmt.Fprintf(w, `<article><h1>%s</h1><time datetime="%s">%s</time>`, esc(p.Title), esc(p.Date), esc(p.Date))
			if len(p.Tags) > 0 {
				fmt.Fprintf(w, `<p class="tags">%s</p>`, esc(presskit.JoinTags(p.Tags)))
			}
			if err := entry.Body.Render(context.Background(), w); err != nil {
				return err
			}
			fmt.Fprint(w, `</article>`)
			if len(related) > 0 {
				fmt.Fprint(w, `<aside><h2>Related</h2>`)
				if err := writePostList(w, related); err != nil {
					return err
				}
				fmt.Fprint(w, `</aside>`)
			}
			return nil
		})
	})
}

// PreviewLogin renders the editor login form.
func PreviewLogin(showError bool, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		fmt.Fprint(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Preview login</title></head><body>`)
		if showError {
			fmt.Fprint(w, `<p class="error">Wrong password.</p>`)
		}
		fmt.Fprintf(w, `<form method="post" action="/preview/login/">`+
			`<input type="hidden" name="_csrf" value="%s">`+
			`<input type="password" name="password" autofocus>`+
			`<button type="submit">Log in</button></form>`, esc(csrfToken))
		_, err := fmt.Fprint(w, `</body></html>`)
		return err
	})
}

// PreviewDashboard lists every registered post with its publication state.
func PreviewDashboard(cfg presskit.SiteConfig, posts []presskit.Post, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Preview - %s</title></head><body>`, esc(cfg.Name))
		fmt.Fprint(w, `<h1>Posts</h1><table><tr><th>Title</th><th>Date</th><th>Status</th></tr>`)
		for _, p := range posts {
			status := "draft"
			if p.Published {
				status = "published"
			}
			fmt.Fprintf(w, `<tr><td><a href="%s">%s</a></td><td>%s</td><td>%s</td></tr>`,
				esc(p.Link), esc(p.Title), esc(p.Date), status)
		}
		fmt.Fprint(w, `</table>`)
		fmt.Fprintf(w, `<form method="post" action="/preview/logout/">`+
			`<input type="hidden" name="_csrf" value="%s">`+
			`<button type="submit">Log out</button></form>`, esc(csrfToken))
		_, err := fmt.Fprint(w, `</body></html>`)
		return err
	})
}

// NotFound renders the 404 page.
func NotFound(cfg presskit.SiteConfig) templ.Component {
	return component(func(w io.Writer) error {
		meta := presskit.PageMeta{Title: "Not found - " + cfg.Name}
		return writeShell(w, cfg, meta, "", func(w io.Writer) error {
			_, err := fmt.Fprint(w, `<h1>404</h1><p>That page does not exist. <a href="/blog/">Browse the blog</a>.</p>`)
			return err
		})
	})
}

// ServerError renders the 500 page.
func ServerError(cfg presskit.SiteConfig) templ.Component {
	return component(func(w io.Writer) error {
		meta := presskit.PageMeta{Title: "Something went wrong - " + cfg.Name}
		return writeShell(w, cfg, meta, "", func(w io.Writer) error {
			_, err := fmt.Fprint(w, `<h1>500</h1><p>Something went wrong on our side.</p>`)
			return err
		})
	})
}
