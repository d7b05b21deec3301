package gateway

import (
	"context"

	"github.com/Skotchmaster/inventory_console/internal/logging"
	"github.com/Skotchmaster/inventory_console/internal/models"
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// EventingGateway publishes a product event after every successful mutation.
// Publish failures are logged and never change the mutation result.
type EventingGateway struct {
	Gateway
	Producer Publisher
	Topic    string
}

func WithEvents(next Gateway, producer Publisher, topic string) *EventingGateway {
	return &EventingGateway{Gateway: next, Producer: producer, Topic: topic}
}

func (g *EventingGateway) CreateProduct(ctx context.Context, p models.NewProduct) (*models.Product, error) {
	prod, err := g.Gateway.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	g.publish(ctx, prod.ID, productEvent("product_created", prod))
	return prod, nil
}

func (g *EventingGateway) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	prod, err := g.Gateway.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	g.publish(ctx, id, productEvent("product_updated", prod))
	return prod, nil
}

func (g *EventingGateway) DeleteProduct(ctx context.Context, id string) error {
	if err := g.Gateway.DeleteProduct(ctx, id); err != nil {
		return err
	}
	g.publish(ctx, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

// productEvent carries the whole product so consumers can index it as is.
func productEvent(kind string, p *models.Product) map[string]any {
	return map[string]any{
		"type":        kind,
		"productID":   p.ID,
		"name":        p.Name,
		"unit_price":  p.UnitPrice,
		"quantity":    p.Quantity,
		"description": p.Description,
	}
}

func (g *EventingGateway) publish(ctx context.Context, key string, event map[string]any) {
	if err := g.Producer.PublishEvent(ctx, g.Topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", g.Topic, "type", event["type"], "error", err)
	}
}
