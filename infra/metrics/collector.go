package metrics

import (
	"context"

	"github.com/kilianp07/productfactory/core/catalog"
	coremetrics "github.com/kilianp07/productfactory/core/metrics"
	"github.com/kilianp07/productfactory/infra/logger"
	"github.com/kilianp07/productfactory/internal/eventbus"
)

// StartEventCollector subscribes to the catalog bus and records every event
// in sink. It stops when the context is canceled or the bus is closed; the
// returned channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[catalog.Event], sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordProductEvent(ToProductEvent(ev)); err != nil {
					log.Warnf("record %s event: %v", ev.Action, err)
				}
			}
		}
	}()
	return done
}

// ToProductEvent converts a catalog event into its metrics form.
func ToProductEvent(ev catalog.Event) coremetrics.ProductEvent {
	pe := coremetrics.ProductEvent{
		Action:      string(ev.Action),
		Tag:         ev.Tag,
		Kind:        ev.Kind,
		ProductID:   ev.ProductID,
		CatalogSize: ev.Size,
		Count:       ev.Count,
		Time:        ev.Time,
	}
	if ev.Err != nil {
		pe.Error = ev.Err.Error()
	}
	return pe
}
