// Package metrics provides Prometheus metrics for calls made to the gateway.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/models"
)

const namespace = "inventory_console"

var (
	// GatewayCalls counts gateway operations by outcome ("ok" or "error").
	GatewayCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "Gateway calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// GatewayDuration tracks gateway call latency.
	GatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "call_duration_seconds",
			Help:      "Gateway call duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
)

type InstrumentedGateway struct {
	next gateway.Gateway
}

func Instrument(next gateway.Gateway) *InstrumentedGateway {
	return &InstrumentedGateway{next: next}
}

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	GatewayCalls.WithLabelValues(op, outcome).Inc()
	GatewayDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (g *InstrumentedGateway) Authenticate(ctx context.Context, email, password string) (res *gateway.AuthResult, err error) {
	defer func(start time.Time) { observe("authenticate", start, err) }(time.Now())
	return g.next.Authenticate(ctx, email, password)
}

func (g *InstrumentedGateway) FetchProfile(ctx context.Context, identityID string) (p *gateway.Profile, err error) {
	defer func(start time.Time) { observe("fetch_profile", start, err) }(time.Now())
	return g.next.FetchProfile(ctx, identityID)
}

func (g *InstrumentedGateway) ListProducts(ctx context.Context) (out []models.Product, err error) {
	defer func(start time.Time) { observe("list_products", start, err) }(time.Now())
	return g.next.ListProducts(ctx)
}

func (g *InstrumentedGateway) CreateProduct(ctx context.Context, p models.NewProduct) (out *models.Product, err error) {
	defer func(start time.Time) { observe("create_product", start, err) }(time.Now())
	return g.next.CreateProduct(ctx, p)
}

func (g *InstrumentedGateway) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (out *models.Product, err error) {
	defer func(start time.Time) { observe("update_product", start, err) }(time.Now())
	return g.next.UpdateProduct(ctx, id, patch)
}

func (g *InstrumentedGateway) DeleteProduct(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe("delete_product", start, err) }(time.Now())
	return g.next.DeleteProduct(ctx, id)
}
