package presskit

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(a.Registry.Posts(""), a.Config.URL))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts := a.Registry.Posts(tag)
	tags := a.Registry.Tags()
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "blog" {
		return Render(c, a.Views.BlogIndexPartial(posts, tag, tags))
	}
	return Render(c, a.Views.BlogIndex(posts, tag, tags, a.Config.URL))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	res := a.Registry.Resolve(slug)
	switch res.Action {
	case ActionRender:
		related := FilterRelatedPosts(res.Entry.Post, a.Registry.Posts(""))
		return Render(c, a.Views.Post(res.Entry, related, a.Config.URL, false))
	case ActionRedirect:
		// Editors see the draft in place of the soft-hide redirect.
		if a.previewEnabled() && IsEditor(c) {
			entry, _ := a.Registry.Entry(slug)
			return Render(c, a.Views.Post(entry, nil, a.Config.URL, true))
		}
		return c.Redirect(http.StatusSeeOther, res.Location)
	default:
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Registry.Posts(""))
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Registry.Posts(""))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /preview/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
