// Package presskit is a static marketing-blog engine built with Go, Echo,
// and templ. Posts are authored as markdown files with TOML front matter and
// compiled into an immutable slug registry at startup; a published set gates
// which posts are publicly visible. There is no runtime post CRUD.
//
// Users provide their own templ components via the ViewFuncs struct, and
// presskit handles routing, resolution, middleware, feeds, and analytics.
package presskit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/fenlow/presskit/analytics"
	"github.com/fenlow/presskit/markdown"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets
// users own and customize all templates.
type ViewFuncs struct {
	Home             func(posts []Post, siteURL string) templ.Component
	BlogIndex        func(posts []Post, activeTag string, tags []string, siteURL string) templ.Component
	BlogIndexPartial func(posts []Post, activeTag string, tags []string) templ.Component
	Post             func(entry Entry, related []Post, siteURL string, draft bool) templ.Component
	PreviewLogin     func(showError bool, csrfToken string) templ.Component
	PreviewDashboard func(posts []Post, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central presskit application. It wires together the registry,
// handlers, middleware, analytics, and user-provided templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Registry *Registry
	Views    ViewFuncs

	posts          []Post
	render         RenderBody
	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a presskit App serving the given posts with the given
// configuration and view functions.
func New(cfg SiteConfig, posts []Post, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		posts:     posts,
		render:    markdown.Markdown,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Bootstrap builds the registry and installs middleware and routes. It is
// split from Start so the handler chain can be exercised without binding a
// listener.
func (a *App) Bootstrap() error {
	if err := a.Views.validate(); err != nil {
		return err
	}
	if a.previewEnabled() && a.Config.SessionSecret == "" {
		return fmt.Errorf("presskit: SessionSecret is required when PreviewPassword is set")
	}

	registry, err := NewRegistry(a.posts, a.Config.Unpublished, a.render)
	if err != nil {
		return err
	}
	a.Registry = registry

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("presskit: init analytics: %w", err)
		}
		a.analyticsStore = store
		if err := analytics.InitSalt(store); err != nil {
			return fmt.Errorf("presskit: init analytics salt: %w", err)
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start bootstraps the app and runs the server until it is shut down.
func (a *App) Start() error {
	if err := a.Bootstrap(); err != nil {
		return err
	}

	if a.analyticsStore != nil {
		stopCleanup := a.analyticsStore.StartCleanupScheduler(a.Config.AnalyticsRetentionDays, 24*time.Hour)
		defer stopCleanup()
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handlePost)

	if a.previewEnabled() {
		e.GET("/preview/", a.handlePreview)
		e.POST("/preview/login/", a.handlePreviewLogin)
		e.POST("/preview/logout/", handlePreviewLogout)
	}

	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		handler := analytics.NewHandler(a.analyticsStore, a.Config.StatsCacheTTL)
		e.Use(handler.Middleware())
		if a.previewEnabled() {
			handler.RegisterRoutes(e, func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c echo.Context) error {
					if !IsEditor(c) {
						return c.Redirect(http.StatusSeeOther, "/preview/")
					}
					return next(c)
				}
			})
		}
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}

func (a *App) previewEnabled() bool {
	return a.Config.PreviewPassword != ""
}

func (v ViewFuncs) validate() error {
	missing := ""
	switch {
	case v.Home == nil:
		missing = "Home"
	case v.BlogIndex == nil:
		missing = "BlogIndex"
	case v.BlogIndexPartial == nil:
		missing = "BlogIndexPartial"
	case v.Post == nil:
		missing = "Post"
	case v.PreviewLogin == nil:
		missing = "PreviewLogin"
	case v.PreviewDashboard == nil:
		missing = "PreviewDashboard"
	case v.NotFound == nil:
		missing = "NotFound"
	case v.ServerError == nil:
		missing = "ServerError"
	}
	if missing != "" {
		return fmt.Errorf("presskit: ViewFuncs.%s is required", missing)
	}
	return nil
}
