package store

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/models"
)

var _ gateway.Gateway = (*GormRepo)(nil)

func InitTestDB(t *testing.T) *GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	r := &GormRepo{DB: db}
	if err := r.Migrate(); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return r
}

func TestAuthenticateAndFetchProfile(t *testing.T) {
	r := InitTestDB(t)
	ctx := context.Background()

	m, err := r.CreateMember(ctx, " Alice@Example.com ", "alice", "Secret123", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)

	res, err := r.Authenticate(ctx, "alice@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, m.ID, res.IdentityID)
	assert.NotEmpty(t, res.SessionToken)

	p, err := r.FetchProfile(ctx, res.IdentityID)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "admin", p.Role)
}

func TestAuthenticate_Rejects(t *testing.T) {
	r := InitTestDB(t)
	ctx := context.Background()
	_, err := r.CreateMember(ctx, "bob@example.com", "bob", "Secret123", models.RoleUser)
	require.NoError(t, err)

	_, err = r.Authenticate(ctx, "bob@example.com", "wrong")
	assert.ErrorIs(t, err, gateway.ErrInvalidCredentials)

	_, err = r.Authenticate(ctx, "nobody@example.com", "Secret123")
	assert.ErrorIs(t, err, gateway.ErrInvalidCredentials)
}

func TestCreateMember_KeepsExisting(t *testing.T) {
	r := InitTestDB(t)
	ctx := context.Background()

	first, err := r.CreateMember(ctx, "c@example.com", "carol", "one", models.RoleUser)
	require.NoError(t, err)
	second, err := r.CreateMember(ctx, "c@example.com", "carol2", "two", models.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	_, err = r.Authenticate(ctx, "c@example.com", "one")
	require.NoError(t, err)
}

func TestFetchProfile_Missing(t *testing.T) {
	r := InitTestDB(t)
	_, err := r.FetchProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestProductCRUD(t *testing.T) {
	r := InitTestDB(t)
	ctx := context.Background()

	created, err := r.CreateProduct(ctx, models.NewProduct{Name: "Kopi", UnitPrice: 12.5, Quantity: 3})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	list, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kopi", list[0].Name)

	q := int64(5)
	updated, err := r.UpdateProduct(ctx, created.ID, models.ProductPatch{Quantity: &q})
	require.NoError(t, err)
	assert.EqualValues(t, 5, updated.Quantity)
	assert.Equal(t, "Kopi", updated.Name)
	assert.Equal(t, 12.5, updated.UnitPrice)

	require.NoError(t, r.DeleteProduct(ctx, created.ID))
	err = r.DeleteProduct(ctx, created.ID)
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	_, err = r.UpdateProduct(ctx, created.ID, models.ProductPatch{Quantity: &q})
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	list, err = r.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateProduct_RequiresName(t *testing.T) {
	r := InitTestDB(t)
	_, err := r.CreateProduct(context.Background(), models.NewProduct{Name: "  "})
	assert.ErrorIs(t, err, gateway.ErrValidation)
}
