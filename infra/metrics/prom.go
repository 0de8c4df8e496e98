package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/productfactory/core/metrics"
)

// PromSink records catalog events in Prometheus metrics.
type PromSink struct {
	events *prometheus.CounterVec
	size   prometheus.Gauge
}

// NewPromSink registers catalog metrics on the default Prometheus registerer.
// The exporter is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "product_events_total",
		Help: "Total number of catalog operations by action and product kind",
	}, []string{"action", "kind"}))
	if err != nil {
		return nil, err
	}
	size, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Number of products currently held by the catalog",
	}))
	if err != nil {
		return nil, err
	}
	return &PromSink{events: events, size: size}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordProductEvent increments the event counter and tracks the catalog size.
func (s *PromSink) RecordProductEvent(ev coremetrics.ProductEvent) error {
	kind := ev.Kind
	if kind == "" {
		kind = "none"
	}
	s.events.WithLabelValues(ev.Action, kind).Inc()
	s.size.Set(float64(ev.CatalogSize))
	return nil
}

// RecordCatalogSize sets the catalog gauge.
func (s *PromSink) RecordCatalogSize(size int) error {
	s.size.Set(float64(size))
	return nil
}
