package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/logging"
	authmw "github.com/Skotchmaster/inventory_console/internal/middleware/auth"
	"github.com/Skotchmaster/inventory_console/internal/middleware/csrf"
	"github.com/Skotchmaster/inventory_console/internal/signin"
)

type SignInHandler struct {
	Gateway  gateway.Gateway
	Sessions *authmw.Sessions
}

type signInPage struct {
	Title   string
	Message string
	Email   string
	CSRF    string
}

// redirectNavigator remembers where the flow asked to go.
type redirectNavigator struct {
	path string
}

func (n *redirectNavigator) Navigate(path string) { n.path = path }

func (h *SignInHandler) Page(c echo.Context) error {
	if _, ok := h.Sessions.StoreFor(c).Load(); ok {
		return c.Redirect(http.StatusSeeOther, signin.DashboardPath)
	}
	return c.Render(http.StatusOK, "signin.html", signInPage{Title: "Sign in", CSRF: csrf.Token(c)})
}

func (h *SignInHandler) Submit(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "signin")

	store := h.Sessions.StoreFor(c)
	if _, ok := store.Load(); ok {
		return c.Redirect(http.StatusSeeOther, signin.DashboardPath)
	}

	email := c.FormValue("email")
	nav := &redirectNavigator{}
	flow := signin.New(h.Gateway, store, nav)

	err := flow.Submit(c.Request().Context(), email, c.FormValue("password"))
	if err == nil {
		return c.Redirect(http.StatusSeeOther, nav.path)
	}

	status := http.StatusUnauthorized
	if errors.Is(err, signin.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	l.Info("signin_rejected", "status", status, "state", flow.State().String())
	return c.Render(status, "signin.html", signInPage{
		Title:   "Sign in",
		Message: flow.Message(),
		Email:   email,
		CSRF:    csrf.Token(c),
	})
}
