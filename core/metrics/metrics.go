package metrics

import "time"

// ProductEvent is a catalog change to be recorded.
type ProductEvent struct {
	Action    string
	Tag       string
	Kind      string
	ProductID string
	// CatalogSize is the number of products held after the change.
	CatalogSize int
	// Count is the number of products affected.
	Count int
	Error string
	Time  time.Time
}

// MetricsSink records product events for observability purposes.
type MetricsSink interface {
	RecordProductEvent(ev ProductEvent) error
}

// CatalogSizeRecorder is implemented by sinks tracking the catalog size.
type CatalogSizeRecorder interface {
	RecordCatalogSize(size int) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordProductEvent(ProductEvent) error { return nil }
func (NopSink) RecordCatalogSize(int) error           { return nil }
