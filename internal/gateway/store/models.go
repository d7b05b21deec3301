package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID           string    `gorm:"primaryKey;size:36"     json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"   json:"email"`
	Username     string    `gorm:"not null"               json:"username"`
	Role         string    `gorm:"not null;default:user"  json:"role"`
	PasswordHash string    `gorm:"not null"               json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Member) TableName() string { return "members" }

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type ProductRow struct {
	ID          string    `gorm:"primaryKey;size:36"          json:"id"`
	Name        string    `gorm:"column:nama_produk;not null"  json:"nama_produk"`
	UnitPrice   float64   `gorm:"column:harga_satuan;not null" json:"harga_satuan"`
	Quantity    int64     `gorm:"not null"                     json:"quantity"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProductRow) TableName() string { return "products" }

func (p *ProductRow) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
