package rest

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/Skotchmaster/inventory_console/internal/models"
)

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordGrantResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

type memberRow struct {
	ID       rowID  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type productRow struct {
	ID          rowID      `json:"id"`
	Name        string     `json:"nama_produk"`
	UnitPrice   float64    `json:"harga_satuan"`
	Quantity    float64    `json:"quantity"`
	Description *string    `json:"description"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type insertProductRequest struct {
	Name      string  `json:"nama_produk"`
	UnitPrice float64 `json:"harga_satuan"`
	Quantity  int64   `json:"quantity"`
}

type patchProductRequest struct {
	Name        *string  `json:"nama_produk,omitempty"`
	UnitPrice   *float64 `json:"harga_satuan,omitempty"`
	Quantity    *int64   `json:"quantity,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (b errorBody) text() string {
	for _, s := range []string{b.Message, b.Msg, b.ErrorDescription, b.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// rowID accepts both string and numeric primary keys.
type rowID string

func (r *rowID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = rowID(s)
		return nil
	}
	if string(b) == "null" {
		*r = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = rowID(strings.TrimSpace(n.String()))
	return nil
}

func (p productRow) toModel() models.Product {
	out := models.Product{
		ID:        string(p.ID),
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Quantity:  int64(p.Quantity),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	return out
}

func patchFromModel(p models.ProductPatch) patchProductRequest {
	return patchProductRequest{
		Name:        p.Name,
		UnitPrice:   p.UnitPrice,
		Quantity:    p.Quantity,
		Description: p.Description,
	}
}
