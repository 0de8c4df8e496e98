package metrics

import "github.com/kilianp07/productfactory/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	// PrometheusAddress serves /metrics when not empty, e.g. ":9090".
	PrometheusAddress string                 `json:"prometheus_address"`
	Sinks             []factory.ModuleConfig `json:"sinks"`
}
