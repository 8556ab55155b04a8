package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Counter counts labelled events on a Prometheus counter vector.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series for the label values.
func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Value returns the current count for the label values. Intended for tests.
func (c *Counter) Value(val ...string) float64 {
	return testutil.ToFloat64(c.vec.WithLabelValues(val...))
}

// NewCounter registers a counter vector with reg.
func NewCounter(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)
	reg.MustRegister(vec)
	return &Counter{Name: name, Help: help, vec: vec}
}

// Popup groups the counters recorded by the popup hosts.
type Popup struct {
	Opens       *Counter
	Drills      *Counter
	Navigations *Counter

	registry *prometheus.Registry
}

// NewPopup registers the popup counters on a private registry.
func NewPopup() *Popup {
	reg := prometheus.NewRegistry()
	return &Popup{
		Opens:       NewCounter(reg, "submenu_popup_open_total", "Popup groups opened.", "group"),
		Drills:      NewCounter(reg, "submenu_popup_drill_total", "Nested item lists shown.", "group"),
		Navigations: NewCounter(reg, "submenu_popup_navigate_total", "Rows followed to a page.", "group"),
		registry:    reg,
	}
}

// Handler serves the popup registry in the Prometheus exposition format.
func (p *Popup) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
