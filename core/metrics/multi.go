package metrics

import "errors"

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordProductEvent forwards the event to every sink. A failing sink does
// not stop the others; the errors are joined.
func (m *MultiSink) RecordProductEvent(ev ProductEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordProductEvent(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordCatalogSize forwards the size to sinks supporting it.
func (m *MultiSink) RecordCatalogSize(size int) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(CatalogSizeRecorder); ok {
			if err := r.RecordCatalogSize(size); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
