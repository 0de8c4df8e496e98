package app

import (
	"fmt"
	"maps"
	"slices"

	"github.com/kilianp07/productfactory/config"
	"github.com/kilianp07/productfactory/core/creator"
	"github.com/kilianp07/productfactory/core/product"
	"github.com/kilianp07/productfactory/infra/logger"
)

// BuildRegistry installs the built-in creators, then the configured aliases,
// then removes the disabled tags. A nil ids uses random UUIDs.
func BuildRegistry(cfg config.CatalogConfig, ids product.IDGenerator, log logger.Logger) (*creator.Registry, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	reg := creator.NewDefaultRegistry(ids)
	// Aliases are registered in tag order so AvailableTypes is stable.
	for _, tag := range slices.Sorted(maps.Keys(cfg.Aliases)) {
		kind := cfg.Aliases[tag]
		c, ok := creator.Builtin(product.Kind(kind), ids)
		if !ok {
			return nil, fmt.Errorf("alias %q: unknown kind %q", tag, kind)
		}
		reg.Register(tag, c)
		log.Debugf("registered alias %s -> %s", tag, kind)
	}
	for _, tag := range cfg.DisabledTypes {
		if !reg.Has(tag) {
			log.Warnf("cannot disable unknown product type %q", tag)
			continue
		}
		reg.Unregister(tag)
	}
	return reg, nil
}
