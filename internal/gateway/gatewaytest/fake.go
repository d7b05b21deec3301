// Package gatewaytest provides an in-memory gateway.Gateway for tests.
package gatewaytest

import (
	"context"
	"fmt"
	"sync"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/models"
)

type Member struct {
	ID       string
	Email    string
	Password string
	Username string
	Role     string
}

type UpdateCall struct {
	ID    string
	Patch models.ProductPatch
}

// Fake keeps members and products in memory and counts every call.
// Setting one of the *Err fields makes the matching operation fail.
type Fake struct {
	mu sync.Mutex

	Members  []Member
	Products []models.Product

	AuthErr    error
	ProfileErr error
	ListErr    error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error

	Calls   map[string]int
	Created []models.NewProduct
	Updates []UpdateCall
	Deleted []string

	seq int
}

func New() *Fake {
	return &Fake{Calls: make(map[string]int)}
}

func (f *Fake) count(op string) {
	if f.Calls == nil {
		f.Calls = make(map[string]int)
	}
	f.Calls[op]++
}

// TotalCalls sums calls across all operations.
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		n += c
	}
	return n
}

func (f *Fake) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[op]
}

func (f *Fake) Authenticate(_ context.Context, email, password string) (*gateway.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("authenticate")
	if f.AuthErr != nil {
		return nil, f.AuthErr
	}
	for _, m := range f.Members {
		if m.Email == email && m.Password == password {
			return &gateway.AuthResult{IdentityID: m.ID, SessionToken: "token-" + m.ID}, nil
		}
	}
	return nil, gateway.ErrInvalidCredentials
}

func (f *Fake) FetchProfile(_ context.Context, identityID string) (*gateway.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("fetch_profile")
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	for _, m := range f.Members {
		if m.ID == identityID {
			return &gateway.Profile{ID: m.ID, Username: m.Username, Role: m.Role}, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (f *Fake) ListProducts(context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("list_products")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.Product, len(f.Products))
	copy(out, f.Products)
	return out, nil
}

func (f *Fake) CreateProduct(_ context.Context, p models.NewProduct) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("create_product")
	f.Created = append(f.Created, p)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.seq++
	prod := models.Product{
		ID:        fmt.Sprintf("new-%d", f.seq),
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Quantity:  p.Quantity,
	}
	f.Products = append(f.Products, prod)
	return &prod, nil
}

func (f *Fake) UpdateProduct(_ context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("update_product")
	f.Updates = append(f.Updates, UpdateCall{ID: id, Patch: patch})
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	for i := range f.Products {
		if f.Products[i].ID == id {
			f.Products[i] = patch.Apply(f.Products[i])
			p := f.Products[i]
			return &p, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (f *Fake) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("delete_product")
	f.Deleted = append(f.Deleted, id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i := range f.Products {
		if f.Products[i].ID == id {
			f.Products = append(f.Products[:i], f.Products[i+1:]...)
			return nil
		}
	}
	return gateway.ErrNotFound
}
