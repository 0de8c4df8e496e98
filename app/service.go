package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/productfactory/api/products"
	"github.com/kilianp07/productfactory/config"
	"github.com/kilianp07/productfactory/core/catalog"
	"github.com/kilianp07/productfactory/core/creator"
	"github.com/kilianp07/productfactory/core/factory"
	coremetrics "github.com/kilianp07/productfactory/core/metrics"
	"github.com/kilianp07/productfactory/core/monitoring"
	"github.com/kilianp07/productfactory/infra/logger"
	"github.com/kilianp07/productfactory/infra/metrics"
	inframon "github.com/kilianp07/productfactory/infra/monitoring"
	"github.com/kilianp07/productfactory/internal/eventbus"
)

// Service wires the registry, the catalog, the HTTP surface and metrics.
type Service struct {
	Registry *creator.Registry
	Catalog  *catalog.Catalog

	cfg     *config.Config
	bus     *eventbus.TypedBus[catalog.Event]
	sink    coremetrics.MetricsSink
	handler http.Handler
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := inframon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(mon)

	reg, err := BuildRegistry(cfg.Catalog, nil, logger.New("registry"))
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	sinkCfgs := cfg.Metrics.Sinks
	if cfg.Metrics.PrometheusAddress != "" && !hasSink(sinkCfgs, "prometheus") {
		sinkCfgs = append(slices.Clone(sinkCfgs), factory.ModuleConfig{Type: "prometheus"})
	}
	sink, err := coremetrics.NewMetricsSink(sinkCfgs)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.NewTyped[catalog.Event]()
	cat := catalog.New(reg, catalog.WithBus(bus), catalog.WithLogger(logger.New("catalog")))
	h := products.NewHandler(cat,
		products.WithLogger(logger.New("http")),
		products.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateLimitBurst),
	)

	logg.Infof("product types: %v", reg.AvailableTypes())
	return &Service{
		Registry: reg,
		Catalog:  cat,
		cfg:      cfg,
		bus:      bus,
		sink:     sink,
		handler:  h.Routes(),
		log:      logg,
	}, nil
}

func hasSink(cfgs []factory.ModuleConfig, typ string) bool {
	for _, c := range cfgs {
		if c.Type == typ {
			return true
		}
	}
	return false
}

// Handler returns the HTTP handler serving the UI and API.
func (s *Service) Handler() http.Handler { return s.handler }

// Run serves HTTP and records catalog events until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	collected := metrics.StartEventCollector(ctx, s.bus, s.sink, logger.New("collector"))

	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		ReadTimeout:       time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
	}
	g.Go(func() error {
		s.log.Infof("serving UI on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(s.cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if addr := s.cfg.Metrics.PrometheusAddress; addr != "" {
		g.Go(func() error { return metrics.StartPromServer(ctx, addr) })
	}

	err := g.Wait()
	<-collected
	return err
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	monitoring.Flush(2 * time.Second)
	return nil
}
