package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Skotchmaster/inventory_console/internal/handlers"
	authmw "github.com/Skotchmaster/inventory_console/internal/middleware/auth"
)

type Deps struct {
	Sessions         *authmw.Sessions
	SignInHandler    *handlers.SignInHandler
	DashboardHandler *handlers.DashboardHandler
	SearchHandler    *handlers.SearchHandler
	// Ready reports whether the backend can take requests. Nil means always ready.
	Ready func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return c.String(http.StatusServiceUnavailable, err.Error())
			}
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, "/signin") })
	e.GET("/signin", d.SignInHandler.Page)
	e.POST("/signin", d.SignInHandler.Submit)
	e.POST("/logout", d.DashboardHandler.Logout)

	dash := e.Group("/dashboard", authmw.RequireLogin(d.Sessions))
	dash.GET("", d.DashboardHandler.Show)
	dash.POST("/refresh", d.DashboardHandler.Refresh)
	dash.GET("/search", d.SearchHandler.Handler)

	admin := dash.Group("/products", authmw.RequireAdmin)
	admin.POST("", d.DashboardHandler.CreateProduct)
	admin.POST("/:id/fields", d.DashboardHandler.SetField)
	admin.POST("/:id/save", d.DashboardHandler.SaveProduct)
	admin.POST("/:id/delete", d.DashboardHandler.DeleteProduct)
}
