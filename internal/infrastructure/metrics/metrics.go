// Package metrics do'kon hodisalari uchun prometheus hisoblagichlari.
// Barcha metodlar nil qabul qiluvchida xavfsiz.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rcshop"

// Savat operatsiyalari
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpClear  = "clear"
)

// Natija yorliqlari
const (
	ResultApplied  = "applied"
	ResultCleared  = "cleared"
	ResultNotFound = "not_found"
	ResultPlaced   = "placed"
	ResultEmpty    = "empty_cart"
	ResultInvalid  = "invalid_recipient"
)

// ShopMetrics savat, promokod va buyurtma hisoblagichlari
type ShopMetrics struct {
	cartMutations *prometheus.CounterVec
	promoLookups  *prometheus.CounterVec
	orders        *prometheus.CounterVec
	orderTotal    prometheus.Histogram
}

// NewShopMetrics metrikalarni berilgan registerer'da ro'yxatdan o'tkazish.
// reg nil bo'lsa hech narsa yozmaydigan obyekt qaytadi.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Cart mutations by operation.",
	}, []string{"op"})
	promoLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promo_lookups_total",
		Help:      "Promo code applications by result.",
	}, []string{"result"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_total",
		Help:      "Order attempts by result.",
	}, []string{"result"})
	orderTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_total_rub",
		Help:      "Totals of placed orders in rubles.",
		Buckets:   []float64{1000, 3000, 5000, 9000, 15000, 30000, 60000},
	})
	reg.MustRegister(cartMutations, promoLookups, orders, orderTotal)
	return &ShopMetrics{
		cartMutations: cartMutations,
		promoLookups:  promoLookups,
		orders:        orders,
		orderTotal:    orderTotal,
	}
}

// IncCartMutation savat o'zgarishini sanash
func (m *ShopMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncPromoLookup promokod natijasini sanash
func (m *ShopMetrics) IncPromoLookup(result string) {
	if m == nil || m.promoLookups == nil {
		return
	}
	m.promoLookups.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncOrder buyurtma urinishini sanash
func (m *ShopMetrics) IncOrder(result string) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(result)).Inc()
}

// ObserveOrderTotal joylangan buyurtma summasi
func (m *ShopMetrics) ObserveOrderTotal(total int64) {
	if m == nil || m.orderTotal == nil {
		return
	}
	m.orderTotal.Observe(float64(total))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
