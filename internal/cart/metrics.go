package cart

import "github.com/prometheus/client_golang/prometheus"

// Metrics is optional; a nil *Metrics records nothing.
type Metrics struct {
	Lines      prometheus.Gauge
	Units      prometheus.Gauge
	Operations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_lines",
			Help: "Distinct products in the cart",
		}),
		Units: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_units",
			Help: "Sum of amounts in the cart",
		}),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_operations_total",
				Help: "Cart mutations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}

	reg.MustRegister(m.Lines, m.Units, m.Operations)
	return m
}

func (m *Metrics) observeCart(cart []Product) {
	if m == nil {
		return
	}
	units := 0
	for _, p := range cart {
		units += p.Amount
	}
	m.Lines.Set(float64(len(cart)))
	m.Units.Set(float64(units))
}

func (m *Metrics) observeOp(op string, outcome Outcome) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, string(outcome)).Inc()
}
