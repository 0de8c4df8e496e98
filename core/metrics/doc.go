// Package metrics defines the sinks product catalog events are recorded
// into. Sinks are registered by type name and built from configuration;
// several configured sinks are combined into a MultiSink.
package metrics
