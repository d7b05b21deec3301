package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_console/internal/dashboard"
	"github.com/Skotchmaster/inventory_console/internal/logging"
	"github.com/Skotchmaster/inventory_console/internal/products"
)

var editableFields = []products.Field{
	products.FieldName,
	products.FieldUnitPrice,
	products.FieldQuantity,
	products.FieldDescription,
}

func (h *DashboardHandler) CreateProduct(c echo.Context) error {
	return h.act(c, func(ctx context.Context, v *dashboard.View) error {
		for _, f := range []products.Field{products.FieldName, products.FieldUnitPrice, products.FieldQuantity} {
			if err := v.SetDraftField(f, c.FormValue(string(f))); err != nil {
				return err
			}
		}
		return v.SubmitDraft(ctx)
	})
}

// SetField records one edited cell without saving it.
func (h *DashboardHandler) SetField(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "set_field")

	v, ok := h.lookup(c, c.FormValue(viewParam))
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "page expired, reload the dashboard")
	}
	field := products.Field(c.FormValue("field"))
	err := v.SetField(c.Param("id"), field, c.FormValue("value"))
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, products.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights")
	case errors.Is(err, dashboard.ErrUnknownProduct):
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	case errors.Is(err, products.ErrUnknownField), errors.Is(err, products.ErrValidation):
		l.Warn("set_field_failed", "status", http.StatusBadRequest, "field", field, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "could not update field")
}

// SaveProduct applies the row inputs that differ from what was shown, then saves.
func (h *DashboardHandler) SaveProduct(c echo.Context) error {
	id := c.Param("id")
	return h.act(c, func(ctx context.Context, v *dashboard.View) error {
		for _, f := range editableFields {
			value := c.FormValue(string(f))
			if value == c.FormValue("orig_"+string(f)) {
				continue
			}
			if err := v.SetField(id, f, value); err != nil {
				if errors.Is(err, products.ErrValidation) {
					v.Notices().Error(products.MsgBadNumber)
				}
				return err
			}
		}
		return v.Save(ctx, id)
	})
}

func (h *DashboardHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")
	return h.act(c, func(ctx context.Context, v *dashboard.View) error {
		return v.Remove(ctx, id)
	})
}
