package presskit

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// The preview surface lets an editor authenticate with a shared password
// and see unpublished posts rendered in place of the public soft-hide
// redirect. It never mutates the registry.

func (a *App) handlePreview(c echo.Context) error {
	if !IsEditor(c) {
		return Render(c, a.Views.PreviewLogin(false, CsrfToken(c)))
	}
	return Render(c, a.Views.PreviewDashboard(a.Registry.AllPosts(), CsrfToken(c)))
}

func (a *App) handlePreviewLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.PreviewPassword)) == 1 {
		if err := setEditorSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/preview/")
	}
	return Render(c, a.Views.PreviewLogin(true, CsrfToken(c)))
}

func handlePreviewLogout(c echo.Context) error {
	if err := clearEditorSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/preview/")
}
