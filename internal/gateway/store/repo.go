// Package store is a database-backed Gateway used when the console runs
// against its own database instead of the managed backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/hash"
	"github.com/Skotchmaster/inventory_console/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate() error {
	return r.DB.AutoMigrate(&Member{}, &ProductRow{})
}

// CreateMember registers a member; an existing email is left untouched.
func (r *GormRepo) CreateMember(ctx context.Context, email, username, password string, role models.Role) (*Member, error) {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	m := Member{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Username:     username,
		Role:         string(role),
		PasswordHash: pwHash,
	}
	tx := r.DB.WithContext(ctx).Where("email = ?", m.Email).FirstOrCreate(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

func (r *GormRepo) Authenticate(ctx context.Context, email, password string) (*gateway.AuthResult, error) {
	var m Member
	err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gateway.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", gateway.ErrTransport, err)
	}
	if !hash.CheckPassword(m.PasswordHash, password) {
		return nil, gateway.ErrInvalidCredentials
	}
	return &gateway.AuthResult{IdentityID: m.ID, SessionToken: uuid.NewString()}, nil
}

func (r *GormRepo) FetchProfile(ctx context.Context, identityID string) (*gateway.Profile, error) {
	var m Member
	if err := r.DB.WithContext(ctx).Where("id = ?", identityID).First(&m).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &gateway.Profile{ID: m.ID, Username: m.Username, Role: m.Role}, nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []ProductRow
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, wrapErr(err)
	}
	out := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModel(row))
	}
	return out, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p models.NewProduct) (*models.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", gateway.ErrValidation)
	}
	row := ProductRow{Name: p.Name, UnitPrice: p.UnitPrice, Quantity: p.Quantity}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, wrapErr(err)
	}
	prod := toModel(row)
	return &prod, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	var row ProductRow
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapErr(err)
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["nama_produk"] = *patch.Name
	}
	if patch.UnitPrice != nil {
		updates["harga_satuan"] = *patch.UnitPrice
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
			return nil, wrapErr(err)
		}
	}

	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapErr(err)
	}
	prod := toModel(row)
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&ProductRow{})
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, gateway.ErrNotFound)
	}
	return nil
}

func wrapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", gateway.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", gateway.ErrTransport, err)
}

func toModel(row ProductRow) models.Product {
	created, updated := row.CreatedAt, row.UpdatedAt
	out := models.Product{
		ID:        row.ID,
		Name:      row.Name,
		UnitPrice: row.UnitPrice,
		Quantity:  row.Quantity,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
	if row.Description != nil {
		out.Description = *row.Description
	}
	return out
}
