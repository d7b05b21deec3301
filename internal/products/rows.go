package products

import "github.com/Skotchmaster/inventory_console/internal/models"

type Row struct {
	ID          string
	Name        string
	UnitPrice   float64
	Quantity    int64
	Description string
	Edited      bool
}

// Page is what the product table renders for one role.
type Page struct {
	Rows           []Row
	ShowCreateForm bool
	ShowActions    bool
	ShowDetails    bool
	Draft          Draft
}

// Render builds the table for the current list. Users get name, price and
// quantity only. Admins get pending edits laid over the listed values.
func (t *Table) Render(list []models.Product) Page {
	admin := t.role.IsAdmin()
	page := Page{
		Rows:           make([]Row, 0, len(list)),
		ShowCreateForm: admin,
		ShowActions:    admin,
		ShowDetails:    admin,
	}
	if admin {
		page.Draft = t.draft
	}
	for _, p := range list {
		if !admin {
			page.Rows = append(page.Rows, Row{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice, Quantity: p.Quantity})
			continue
		}
		patch, edited := t.edits[p.ID]
		shown := patch.Apply(p)
		page.Rows = append(page.Rows, Row{
			ID:          shown.ID,
			Name:        shown.Name,
			UnitPrice:   shown.UnitPrice,
			Quantity:    shown.Quantity,
			Description: shown.Description,
			Edited:      edited,
		})
	}
	return page
}
