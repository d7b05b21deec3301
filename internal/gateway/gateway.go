// Package gateway defines the remote backend the console delegates to:
// authentication, member profiles and product rows.
package gateway

import (
	"context"
	"errors"

	"github.com/Skotchmaster/inventory_console/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("rejected by backend")
	ErrTransport          = errors.New("transport error")
)

type AuthResult struct {
	IdentityID   string
	SessionToken string
}

type Profile struct {
	ID       string
	Username string
	Role     string
}

type Gateway interface {
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	FetchProfile(ctx context.Context, identityID string) (*Profile, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.NewProduct) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
