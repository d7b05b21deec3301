// Package dashboard is the protected product view: session gate, list fetch
// and the product table bound to it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/logging"
	"github.com/Skotchmaster/inventory_console/internal/models"
	"github.com/Skotchmaster/inventory_console/internal/notify"
	"github.com/Skotchmaster/inventory_console/internal/products"
	"github.com/Skotchmaster/inventory_console/internal/session"
)

const SignInPath = "/signin"

var (
	ErrNoSession      = errors.New("no session")
	ErrUnknownProduct = errors.New("product is not listed")
)

// View holds one page's state. Its methods may be called from concurrent
// requests; they run one at a time.
type View struct {
	mu sync.Mutex

	gw       gateway.Gateway
	identity models.Identity
	list     []models.Product
	loading  atomic.Bool
	table    *products.Table
	notices  *notify.Board
}

// Mount reads the session. Without one it returns ErrNoSession and the caller
// redirects to SignInPath. Otherwise the product list is fetched once.
func Mount(ctx context.Context, gw gateway.Gateway, store *session.Store) (*View, error) {
	id, ok := store.Load()
	if !ok {
		return nil, ErrNoSession
	}
	v := &View{gw: gw, identity: id, notices: &notify.Board{}}
	v.table = products.NewTable(gw, id.Role, v.refresh, v.notices)
	v.Refresh(ctx)
	return v, nil
}

func (v *View) Identity() models.Identity { return v.identity }

func (v *View) Notices() *notify.Board { return v.notices }

func (v *View) Refresh(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refresh(ctx)
}

// refresh replaces the list on success. On failure the previous list stays
// and nothing is shown to the user.
func (v *View) refresh(ctx context.Context) {
	v.loading.Store(true)
	defer v.loading.Store(false)

	list, err := v.gw.ListProducts(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("list_products_failed", "identity_id", v.identity.ID, "error", err)
		return
	}
	v.list = list
	v.table.Prune(list)
}

type Snapshot struct {
	Identity models.Identity
	Table    products.Page
	Notices  []notify.Notice
}

// Snapshot renders the current state and drains pending notices.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		Identity: v.identity,
		Table:    v.table.Render(v.list),
		Notices:  v.notices.Drain(),
	}
}

func (v *View) Products() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Product, len(v.list))
	copy(out, v.list)
	return out
}

func (v *View) listed(id string) bool {
	for _, p := range v.list {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Loading reports whether a list fetch is in flight.
func (v *View) Loading() bool { return v.loading.Load() }

func (v *View) SetDraftField(field products.Field, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.table.SetDraftField(field, value)
}

func (v *View) SubmitDraft(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.table.SubmitDraft(ctx)
}

// SetField only accepts rows of the listed products.
func (v *View) SetField(id string, field products.Field, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.listed(id) {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	return v.table.SetField(id, field, value)
}

func (v *View) Save(ctx context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.table.Save(ctx, id)
}

func (v *View) Remove(ctx context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.table.Remove(ctx, id)
}
