package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_console/internal/dashboard"
	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/logging"
	authmw "github.com/Skotchmaster/inventory_console/internal/middleware/auth"
	"github.com/Skotchmaster/inventory_console/internal/middleware/csrf"
	"github.com/Skotchmaster/inventory_console/internal/models"
	"github.com/Skotchmaster/inventory_console/internal/products"
)

const viewParam = "view"

type DashboardHandler struct {
	Gateway  gateway.Gateway
	Sessions *authmw.Sessions
	Views    *dashboard.Registry
}

type dashboardPage struct {
	dashboard.Snapshot
	Title  string
	ViewID string
	CSRF   string
}

// Show renders the dashboard. Without a known view id for the current
// identity a fresh view is mounted, which fetches the list again.
func (h *DashboardHandler) Show(c echo.Context) error {
	viewID := c.QueryParam(viewParam)
	v, ok := h.lookup(c, viewID)
	if !ok {
		var err error
		v, err = dashboard.Mount(c.Request().Context(), h.Gateway, h.Sessions.StoreFor(c))
		if errors.Is(err, dashboard.ErrNoSession) {
			return c.Redirect(http.StatusSeeOther, dashboard.SignInPath)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not open dashboard")
		}
		viewID = h.Views.Put(v)
	}
	return c.Render(http.StatusOK, "dashboard.html", dashboardPage{
		Snapshot: v.Snapshot(),
		Title:    "Products",
		ViewID:   viewID,
		CSRF:     csrf.Token(c),
	})
}

func (h *DashboardHandler) Refresh(c echo.Context) error {
	return h.act(c, func(ctx context.Context, v *dashboard.View) error {
		v.Refresh(ctx)
		return nil
	})
}

func (h *DashboardHandler) Logout(c echo.Context) error {
	h.Sessions.StoreFor(c).Clear()
	if id := c.FormValue(viewParam); id != "" {
		h.Views.Drop(id)
	}
	logging.FromContext(c.Request().Context()).Info("logout")
	return c.Redirect(http.StatusSeeOther, dashboard.SignInPath)
}

// lookup returns the view only if it belongs to the signed-in identity.
func (h *DashboardHandler) lookup(c echo.Context, viewID string) (*dashboard.View, bool) {
	if viewID == "" {
		return nil, false
	}
	v, ok := h.Views.Get(viewID)
	if !ok {
		return nil, false
	}
	id, ok := currentIdentity(c, h.Sessions)
	if !ok || id != v.Identity() {
		return nil, false
	}
	return v, true
}

// act runs fn on the request's view and sends the browser back to it.
// Outcomes reach the user through the view's notices.
func (h *DashboardHandler) act(c echo.Context, fn func(context.Context, *dashboard.View) error) error {
	viewID := c.FormValue(viewParam)
	v, ok := h.lookup(c, viewID)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	if err := fn(c.Request().Context(), v); err != nil {
		if errors.Is(err, products.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights")
		}
		logging.FromContext(c.Request().Context()).Info("dashboard_action_failed", "view", viewID, "error", err)
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard?"+url.Values{viewParam: {viewID}}.Encode())
}

func currentIdentity(c echo.Context, s *authmw.Sessions) (models.Identity, bool) {
	if id, ok := authmw.IdentityFrom(c); ok {
		return id, true
	}
	return s.StoreFor(c).Load()
}
