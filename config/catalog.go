package config

import (
	"fmt"
	"slices"

	"github.com/kilianp07/productfactory/core/product"
)

// CatalogConfig adjusts the set of product types offered at startup.
type CatalogConfig struct {
	// DisabledTypes are unregistered after the built-ins are installed.
	DisabledTypes []string `json:"disabled_types" validate:"dive,required"`
	// Aliases registers extra tags creating a built-in kind, e.g. widget: generic.
	Aliases map[string]string `json:"aliases" validate:"dive,keys,required,endkeys,required"`
}

// Validate checks that aliases point to built-in kinds.
func (c CatalogConfig) Validate() error {
	for tag, kind := range c.Aliases {
		if !slices.Contains(product.Kinds(), product.Kind(kind)) {
			return fmt.Errorf("catalog alias %q: unknown kind %q", tag, kind)
		}
	}
	return nil
}
