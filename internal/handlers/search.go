package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_console/internal/logging"
	"github.com/Skotchmaster/inventory_console/internal/service/search"
	"github.com/Skotchmaster/inventory_console/internal/util"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (*search.Result, error)
}

type SearchHandler struct {
	Searcher Searcher
}

func NewSearchHandler(s Searcher) *SearchHandler {
	return &SearchHandler{Searcher: s}
}

func (h *SearchHandler) Handler(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "search")

	if h.Searcher == nil {
		return echo.NewHTTPError(http.StatusNotFound, "search is not configured")
	}
	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_failed", "status", http.StatusBadRequest, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	from, size := util.FromQuery(c.QueryParam("page"), c.QueryParam("size"))

	res, err := h.Searcher.Search(c.Request().Context(), q, from, size)
	if err != nil {
		l.Error("search_failed", "status", http.StatusBadGateway, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": res.Total, "products": res.Products})
}
