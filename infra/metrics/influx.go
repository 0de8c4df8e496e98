package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/productfactory/core/metrics"
	"github.com/kilianp07/productfactory/infra/logger"
)

// InfluxSink writes catalog events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordProductEvent writes the event as a product_event point.
func (s *InfluxSink) RecordProductEvent(ev coremetrics.ProductEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, productPoint(ev))
}

// RecordCatalogSize writes the current catalog size.
func (s *InfluxSink) RecordCatalogSize(size int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("catalog_size").
		AddField("products", size).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the client.
func (s *InfluxSink) Close() { s.client.Close() }

func productPoint(ev coremetrics.ProductEvent) *write.Point {
	p := write.NewPointWithMeasurement("product_event").
		AddTag("action", ev.Action).
		AddTag("component", "catalog")
	if ev.Tag != "" {
		p = p.AddTag("tag", ev.Tag)
	}
	if ev.Kind != "" {
		p = p.AddTag("kind", ev.Kind)
	}
	if ev.ProductID != "" {
		p = p.AddField("product_id", ev.ProductID)
	}
	p = p.AddField("catalog_size", ev.CatalogSize).
		AddField("count", ev.Count)
	if ev.Error != "" {
		p = p.AddField("error", ev.Error)
	}
	return p.SetTime(ev.Time)
}
