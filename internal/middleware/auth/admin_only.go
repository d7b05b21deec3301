package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_console/internal/logging"
)

// RequireAdmin must run after RequireLogin.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
		}
		if !id.Role.IsAdmin() {
			logging.FromContext(c.Request().Context()).Warn("forbidden", "status", http.StatusForbidden, "identity_id", id.ID, "role", id.Role)
			return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights")
		}
		return next(c)
	}
}
