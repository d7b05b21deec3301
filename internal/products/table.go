// Package products holds the per-page product table state: the new-product
// draft, pending row edits and the admin CRUD actions.
//
// The table never changes the displayed list itself. After every successful
// mutation it calls the refresh callback and the owner re-fetches the list.
package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/logging"
	"github.com/Skotchmaster/inventory_console/internal/models"
	"github.com/Skotchmaster/inventory_console/internal/notify"
)

type Field string

const (
	FieldName        Field = "name"
	FieldUnitPrice   Field = "unit_price"
	FieldQuantity    Field = "quantity"
	FieldDescription Field = "description"
)

const (
	MsgFieldsRequired = "all fields are required"
	MsgBadNumber      = "price and quantity must be numbers"
	MsgCreateFailed   = "failed to add product"
	MsgCreated        = "product added"
	MsgSaveFailed     = "failed to save changes"
	MsgSaved          = "changes saved"
	MsgDeleteFailed   = "failed to delete product"
	MsgDeleted        = "product deleted"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnknownField = errors.New("unknown field")
	ErrForbidden    = errors.New("admin role required")
	ErrGateway      = errors.New("gateway call failed")
)

// Draft is the new-product form. Numbers stay text until submit.
type Draft struct {
	Name      string `validate:"required"`
	UnitPrice string `validate:"required"`
	Quantity  string `validate:"required"`
}

type RefreshFunc func(ctx context.Context)

type Table struct {
	gw       gateway.Gateway
	role     models.Role
	refresh  RefreshFunc
	notes    notify.Notifier
	validate *validator.Validate

	draft Draft
	edits map[string]models.ProductPatch
}

func NewTable(gw gateway.Gateway, role models.Role, refresh RefreshFunc, notes notify.Notifier) *Table {
	if refresh == nil {
		refresh = func(context.Context) {}
	}
	return &Table{
		gw:       gw,
		role:     role,
		refresh:  refresh,
		notes:    notes,
		validate: validator.New(),
		edits:    make(map[string]models.ProductPatch),
	}
}

func (t *Table) Role() models.Role { return t.role }

func (t *Table) Draft() Draft { return t.draft }

// Edit returns the pending patch for id, if any.
func (t *Table) Edit(id string) (models.ProductPatch, bool) {
	p, ok := t.edits[id]
	return p, ok
}

func (t *Table) SetDraftField(field Field, value string) error {
	if !t.role.IsAdmin() {
		return ErrForbidden
	}
	switch field {
	case FieldName:
		t.draft.Name = value
	case FieldUnitPrice:
		t.draft.UnitPrice = value
	case FieldQuantity:
		t.draft.Quantity = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (t *Table) SubmitDraft(ctx context.Context) error {
	if !t.role.IsAdmin() {
		return ErrForbidden
	}
	l := logging.FromContext(ctx).With("table", "create")

	if err := t.validate.Struct(t.draft); err != nil {
		t.notes.Error(MsgFieldsRequired)
		return fmt.Errorf("%w: %s", ErrValidation, MsgFieldsRequired)
	}
	price, err := parsePrice(t.draft.UnitPrice)
	if err != nil {
		t.notes.Error(MsgBadNumber)
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	qty, err := parseQuantity(t.draft.Quantity)
	if err != nil {
		t.notes.Error(MsgBadNumber)
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	prod, err := t.gw.CreateProduct(ctx, models.NewProduct{Name: t.draft.Name, UnitPrice: price, Quantity: qty})
	if err != nil {
		l.Warn("create_product_failed", "error", err)
		t.notes.Error(MsgCreateFailed)
		return fmt.Errorf("%w: %w", ErrGateway, err)
	}
	if prod != nil {
		l.Info("product_created", "product_id", prod.ID)
	}

	t.notes.Success(MsgCreated)
	t.draft = Draft{}
	t.refresh(ctx)
	return nil
}

// SetField merges one edited value into the row's pending patch.
func (t *Table) SetField(id string, field Field, value string) error {
	if !t.role.IsAdmin() {
		return ErrForbidden
	}
	var patch models.ProductPatch
	switch field {
	case FieldName:
		patch.Name = &value
	case FieldDescription:
		patch.Description = &value
	case FieldUnitPrice:
		v, err := parsePrice(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		patch.UnitPrice = &v
	case FieldQuantity:
		v, err := parseQuantity(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		patch.Quantity = &v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	t.edits[id] = t.edits[id].Merge(patch)
	return nil
}

// Save sends only the edited fields of id. Without pending edits it does nothing.
// The pending entry is kept after a successful save.
func (t *Table) Save(ctx context.Context, id string) error {
	if !t.role.IsAdmin() {
		return ErrForbidden
	}
	patch, ok := t.edits[id]
	if !ok {
		return nil
	}
	l := logging.FromContext(ctx).With("table", "update", "product_id", id)

	if _, err := t.gw.UpdateProduct(ctx, id, patch); err != nil {
		l.Warn("update_product_failed", "error", err)
		t.notes.Error(MsgSaveFailed)
		return fmt.Errorf("%w: %w", ErrGateway, err)
	}
	t.notes.Success(MsgSaved)
	t.refresh(ctx)
	return nil
}

func (t *Table) Remove(ctx context.Context, id string) error {
	if !t.role.IsAdmin() {
		return ErrForbidden
	}
	l := logging.FromContext(ctx).With("table", "delete", "product_id", id)

	if err := t.gw.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_failed", "error", err)
		t.notes.Error(MsgDeleteFailed)
		return fmt.Errorf("%w: %w", ErrGateway, err)
	}
	t.notes.Success(MsgDeleted)
	t.refresh(ctx)
	return nil
}

// Prune drops pending edits for products that are no longer listed.
func (t *Table) Prune(products []models.Product) {
	visible := make(map[string]struct{}, len(products))
	for _, p := range products {
		visible[p.ID] = struct{}{}
	}
	for id := range t.edits {
		if _, ok := visible[id]; !ok {
			delete(t.edits, id)
		}
	}
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("unit price %q: %w", s, err)
	}
	return v, nil
}

func parseQuantity(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", s, err)
	}
	return v, nil
}
