package factory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

// ErrUnregisteredType is matched by every UnregisteredTypeError.
var ErrUnregisteredType = errors.New("unregistered type")

// UnregisteredTypeError is returned when no factory is registered for a type.
type UnregisteredTypeError struct {
	Type string
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("unregistered type %q", e.Type)
}

// Is reports whether target is ErrUnregisteredType.
func (e *UnregisteredTypeError) Is(target error) bool { return target == ErrUnregisteredType }

// ModuleConfig contains the type name and raw configuration for a module.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory constructs an implementation of T using the provided raw config.
type Factory[T any] func(map[string]any) (T, error)

// Registry stores factories keyed by type name. Types are listed in the
// order they were first registered.
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
	order     []string
}

// NewRegistry returns an empty factory registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register adds or replaces the factory for the given type name. A replaced
// type keeps its position.
func (r *Registry[T]) Register(name string, f Factory[T]) error {
	if f == nil {
		return fmt.Errorf("factory nil for %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; !ok {
		r.order = append(r.order, name)
	}
	r.factories[name] = f
	return nil
}

// Unregister removes the factory for name. Missing names are ignored.
func (r *Registry[T]) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; !ok {
		return
	}
	delete(r.factories, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Has reports whether a factory is registered for name.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Types returns the registered type names.
func (r *Registry[T]) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Build instantiates the type name with the raw configuration.
func (r *Registry[T]) Build(name string, conf map[string]any) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, &UnregisteredTypeError{Type: name}
	}
	return f(conf)
}

// Create instantiates a module based on its configuration.
func (r *Registry[T]) Create(cfg ModuleConfig) (T, error) {
	return r.Build(cfg.Type, cfg.Conf)
}

// Decode fills out the provided struct using json tags.
func Decode(data map[string]any, out any) error {
	return DecodeWithHook(data, out, nil)
}

// DecodeWithHook is Decode with a custom mapstructure decode hook.
func DecodeWithHook(data map[string]any, out any, hook mapstructure.DecodeHookFunc) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: hook,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
