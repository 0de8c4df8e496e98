package creator

import (
	"sync"

	"github.com/kilianp07/productfactory/core/factory"
	"github.com/kilianp07/productfactory/core/product"
)

// Registry maps type tags to creators. It is built once at startup and passed
// to whatever needs to create products.
type Registry struct {
	factories *factory.Registry[product.Product]

	mu       sync.RWMutex
	creators map[string]Creator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: factory.NewRegistry[product.Product](),
		creators:  make(map[string]Creator),
	}
}

// NewDefaultRegistry returns a registry holding the built-in creators keyed
// by their kind. A nil ids uses random UUIDs.
func NewDefaultRegistry(ids product.IDGenerator) *Registry {
	r := NewRegistry()
	for _, k := range product.Kinds() {
		c, _ := Builtin(k, ids)
		r.Register(string(k), c)
	}
	return r
}

// Register inserts or replaces the creator for tag. A nil creator registers
// the unspecialized creation step.
func (r *Registry) Register(tag string, c Creator) {
	if c == nil {
		c = Func(nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creators[tag] = c
	// The factory is never nil, so Register cannot fail.
	_ = r.factories.Register(tag, func(raw map[string]any) (product.Product, error) {
		return c.Create(raw)
	})
}

// Unregister removes tag. Missing tags are ignored.
func (r *Registry) Unregister(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.creators, tag)
	r.factories.Unregister(tag)
}

// Create builds a product with the creator registered for tag. Unknown tags
// fail with *factory.UnregisteredTypeError.
func (r *Registry) Create(tag string, raw product.RawData) (product.Product, error) {
	if raw == nil {
		raw = product.RawData{}
	}
	return r.factories.Build(tag, raw)
}

// AvailableTypes returns the registered tags in registration order.
func (r *Registry) AvailableTypes() []string {
	return r.factories.Types()
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag string) bool {
	return r.factories.Has(tag)
}

// Creator returns the creator registered for tag.
func (r *Registry) Creator(tag string) (Creator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.creators[tag]
	return c, ok
}

// Fields returns the form fields for tag. Creators that do not describe their
// fields get name and price.
func (r *Registry) Fields(tag string) []FieldSpec {
	c, ok := r.Creator(tag)
	if !ok {
		return nil
	}
	if fd, ok := c.(FieldDescriber); ok {
		return fd.Fields()
	}
	out := make([]FieldSpec, len(baseFieldSpecs))
	copy(out, baseFieldSpecs)
	return out
}
