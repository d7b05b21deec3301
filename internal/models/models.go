package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts only the two known roles, ignoring case and surrounding spaces.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	UnitPrice   float64    `json:"unit_price"`
	Quantity    int64      `json:"quantity"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ProductPatch carries only the fields a caller touched; nil means "not sent".
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	Quantity    *int64   `json:"quantity,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.UnitPrice == nil && p.Quantity == nil && p.Description == nil
}

// Merge overlays the non-nil fields of other onto p.
func (p ProductPatch) Merge(other ProductPatch) ProductPatch {
	if other.Name != nil {
		p.Name = other.Name
	}
	if other.UnitPrice != nil {
		p.UnitPrice = other.UnitPrice
	}
	if other.Quantity != nil {
		p.Quantity = other.Quantity
	}
	if other.Description != nil {
		p.Description = other.Description
	}
	return p
}

// Apply returns prod with the patch fields written over it.
func (p ProductPatch) Apply(prod Product) Product {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.UnitPrice != nil {
		prod.UnitPrice = *p.UnitPrice
	}
	if p.Quantity != nil {
		prod.Quantity = *p.Quantity
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	return prod
}

type NewProduct struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
}
