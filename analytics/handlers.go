package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the analytics endpoints and the recording middleware.
type Handler struct {
	store *Store
	cache *StatsCache
}

// NewHandler creates a Handler backed by store. Stats are aggregated over
// the trailing 30 days and cached for ttl.
func NewHandler(store *Store, ttl time.Duration) *Handler {
	return &Handler{
		store: store,
		cache: NewStatsCache(store, 30, ttl),
	}
}

// Middleware records successful HTML page views. Bots, assets, and the
// preview surface are skipped. Recording happens after the handler ran so
// only 2xx responses count.
func (h *Handler) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				return err
			}
			req := c.Request()
			path := req.URL.Path
			if req.Method != http.MethodGet ||
				c.Response().Status >= 300 ||
				strings.HasPrefix(path, "/public/") ||
				strings.HasPrefix(path, "/preview/") ||
				strings.HasSuffix(path, ".xml") ||
				strings.HasSuffix(path, ".txt") ||
				strings.HasSuffix(path, ".svg") {
				return nil
			}
			ua := req.UserAgent()
			if IsBot(ua) {
				return nil
			}
			now := time.Now()
			visit := &Visit{
				VisitorID: VisitorID(c.RealIP(), ua, now),
				Path:      path,
				Referrer:  req.Referer(),
				Timestamp: now,
			}
			if saveErr := h.store.SaveVisit(visit); saveErr != nil {
				c.Logger().Errorf("analytics: save visit: %v", saveErr)
			}
			return nil
		}
	}
}

// RegisterRoutes mounts the stats endpoint, wrapped in authMiddleware.
func (h *Handler) RegisterRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	e.GET("/preview/stats/", h.handleStats, authMiddleware)
}

func (h *Handler) handleStats(c echo.Context) error {
	stats, err := h.cache.Get()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
