package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_console/internal/models"
)

type publishedEvent struct {
	topic, key string
	event      map[string]any
}

type recordingPublisher struct {
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.events = append(p.events, publishedEvent{topic: topic, key: key, event: event.(map[string]any)})
	return p.err
}

// stubGateway answers product mutations from fixed results.
type stubGateway struct {
	Gateway
	err error
}

func (s *stubGateway) CreateProduct(_ context.Context, p models.NewProduct) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Product{ID: "p1", Name: p.Name, UnitPrice: p.UnitPrice, Quantity: p.Quantity}, nil
}

func (s *stubGateway) UpdateProduct(_ context.Context, id string, _ models.ProductPatch) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Product{ID: id, Name: "renamed", UnitPrice: 9000, Quantity: 4, Description: "robusta"}, nil
}

func (s *stubGateway) DeleteProduct(context.Context, string) error { return s.err }

func TestEventingGateway_PublishesOnSuccess(t *testing.T) {
	pub := &recordingPublisher{}
	g := WithEvents(&stubGateway{}, pub, "product_events")
	ctx := context.Background()

	_, err := g.CreateProduct(ctx, models.NewProduct{Name: "Kopi", UnitPrice: 12000, Quantity: 3})
	require.NoError(t, err)
	_, err = g.UpdateProduct(ctx, "p1", models.ProductPatch{})
	require.NoError(t, err)
	require.NoError(t, g.DeleteProduct(ctx, "p1"))

	require.Len(t, pub.events, 3)
	assert.Equal(t, "product_created", pub.events[0].event["type"])
	assert.Equal(t, "Kopi", pub.events[0].event["name"])
	assert.Equal(t, float64(12000), pub.events[0].event["unit_price"])
	assert.Equal(t, int64(3), pub.events[0].event["quantity"])
	assert.Equal(t, "", pub.events[0].event["description"])
	assert.Equal(t, "product_updated", pub.events[1].event["type"])
	assert.Equal(t, "renamed", pub.events[1].event["name"])
	assert.Equal(t, float64(9000), pub.events[1].event["unit_price"])
	assert.Equal(t, int64(4), pub.events[1].event["quantity"])
	assert.Equal(t, "robusta", pub.events[1].event["description"])
	assert.Equal(t, "product_deleted", pub.events[2].event["type"])
	for _, e := range pub.events {
		assert.Equal(t, "product_events", e.topic)
		assert.Equal(t, "p1", e.key)
	}
}

func TestEventingGateway_NoEventOnFailure(t *testing.T) {
	pub := &recordingPublisher{}
	boom := errors.New("boom")
	g := WithEvents(&stubGateway{err: boom}, pub, "product_events")

	err := g.DeleteProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pub.events)
}

func TestEventingGateway_PublishErrorIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	g := WithEvents(&stubGateway{}, pub, "product_events")

	require.NoError(t, g.DeleteProduct(context.Background(), "p1"))
	assert.Len(t, pub.events, 1)
}
