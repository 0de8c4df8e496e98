package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/productfactory/core/metrics"
)

func TestPromSink_RecordProductEvent(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordProductEvent(coremetrics.ProductEvent{Action: "created", Kind: "book", CatalogSize: 1}))
	require.NoError(t, sink.RecordProductEvent(coremetrics.ProductEvent{Action: "created", Kind: "book", CatalogSize: 2}))
	require.NoError(t, sink.RecordProductEvent(coremetrics.ProductEvent{Action: "rejected", CatalogSize: 2}))

	expected := `
# HELP product_events_total Total number of catalog operations by action and product kind
# TYPE product_events_total counter
product_events_total{action="created",kind="book"} 2
product_events_total{action="rejected",kind="none"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(sink.events, strings.NewReader(expected)))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.size))

	require.NoError(t, sink.RecordCatalogSize(0))
	assert.Equal(t, 0.0, testutil.ToFloat64(sink.size))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, second.RecordProductEvent(coremetrics.ProductEvent{Action: "cleared", CatalogSize: 0}))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.events.WithLabelValues("cleared", "none")))
}

func TestPromHandler(t *testing.T) {
	_, err := NewPromSink()
	require.NoError(t, err)
	srv := httptest.NewServer(PromHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "catalog_products")
}
