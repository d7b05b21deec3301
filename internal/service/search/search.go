// Package search queries the product index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/inventory_console/internal/models"
)

var ErrSearch = errors.New("search failed")

type Result struct {
	Total    int64
	Products []models.Product
}

type Service struct {
	ES    *elasticsearch.Client
	Index string
}

func NewService(es *elasticsearch.Client, index string) *Service {
	return &Service{ES: es, Index: index}
}

// document is the indexed shape of a product.
type document struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int64   `json:"quantity"`
	Description string  `json:"description"`
}

// Search runs a fuzzy match over name and description.
func (s *Service) Search(ctx context.Context, query string, from, size int) (*Result, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("%w: encode query: %w", ErrSearch, err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearch, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("%w: %s: %s", ErrSearch, res.Status(), msg)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string   `json:"_id"`
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrSearch, err)
	}

	out := &Result{Total: r.Hits.Total.Value, Products: make([]models.Product, len(r.Hits.Hits))}
	for i, hit := range r.Hits.Hits {
		d := hit.Source
		if d.ID == "" {
			d.ID = hit.ID
		}
		out.Products[i] = models.Product{
			ID:          d.ID,
			Name:        d.Name,
			UnitPrice:   d.UnitPrice,
			Quantity:    d.Quantity,
			Description: d.Description,
		}
	}
	return out, nil
}
