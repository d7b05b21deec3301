package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_console/internal/logging"
)

const SignInPath = "/signin"

// RequireLogin redirects requests without a readable session to the sign-in page.
// An unreadable cookie is cleared on the way out.
func RequireLogin(s *Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := s.StoreFor(c)
			id, ok := store.Load()
			if !ok {
				store.Clear()
				logging.FromContext(c.Request().Context()).Info("session_missing", "redirect", SignInPath)
				return c.Redirect(http.StatusSeeOther, SignInPath)
			}
			setIdentity(c, id)
			return next(c)
		}
	}
}
