package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewShopMetrics(reg)

	m.IncCartMutation(OpAdd)
	m.IncCartMutation(OpAdd)
	m.IncCartMutation(OpClear)
	m.IncPromoLookup(ResultNotFound)
	m.IncOrder(ResultPlaced)
	m.IncOrder("")
	m.ObserveOrderTotal(8380)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartMutations.WithLabelValues(OpAdd)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartMutations.WithLabelValues(OpClear)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.promoLookups.WithLabelValues(ResultNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orders.WithLabelValues("unknown")))

	count, err := testutil.GatherAndCount(reg, "rcshop_order_total_rub")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestShopMetricsNilSafe(t *testing.T) {
	var m *ShopMetrics
	assert.NotPanics(t, func() {
		m.IncCartMutation(OpAdd)
		m.IncPromoLookup(ResultApplied)
		m.IncOrder(ResultPlaced)
		m.ObserveOrderTotal(100)
	})

	noop := NewShopMetrics(nil)
	assert.NotPanics(t, func() { noop.IncOrder(ResultEmpty) })
}
