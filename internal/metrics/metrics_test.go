package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
)

type failingDelete struct {
	gateway.Gateway
	err error
}

func (f *failingDelete) DeleteProduct(context.Context, string) error { return f.err }

func TestInstrument_CountsOutcomes(t *testing.T) {
	okBefore := testutil.ToFloat64(GatewayCalls.WithLabelValues("delete_product", "ok"))
	errBefore := testutil.ToFloat64(GatewayCalls.WithLabelValues("delete_product", "error"))

	g := Instrument(&failingDelete{})
	require.NoError(t, g.DeleteProduct(context.Background(), "p1"))

	boom := errors.New("boom")
	g = Instrument(&failingDelete{err: boom})
	assert.ErrorIs(t, g.DeleteProduct(context.Background(), "p1"), boom)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(GatewayCalls.WithLabelValues("delete_product", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(GatewayCalls.WithLabelValues("delete_product", "error")))
}
