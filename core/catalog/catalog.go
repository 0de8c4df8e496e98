package catalog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kilianp07/productfactory/core/creator"
	"github.com/kilianp07/productfactory/core/logger"
	"github.com/kilianp07/productfactory/core/product"
	"github.com/kilianp07/productfactory/internal/eventbus"
)

// ErrEntryNotFound is returned when an id does not match any entry.
var ErrEntryNotFound = errors.New("catalog: entry not found")

// CloneSuffix is appended to the name of cloned products.
const CloneSuffix = " (clone)"

// Entry is a product held by the catalog together with the tag it was
// created with.
type Entry struct {
	Tag       string
	Product   product.Product
	CreatedAt time.Time
}

// ID returns the product identifier.
func (e Entry) ID() string { return e.Product.Common().ID }

// Catalog is the ordered in-memory list of products created in a session.
type Catalog struct {
	registry *creator.Registry
	bus      *eventbus.TypedBus[Event]
	log      logger.Logger
	now      func() time.Time

	mu      sync.RWMutex
	entries []Entry
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithBus publishes catalog events on bus.
func WithBus(bus *eventbus.TypedBus[Event]) Option {
	return func(c *Catalog) { c.bus = bus }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Catalog) { c.log = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// New returns an empty catalog creating products through reg.
func New(reg *creator.Registry, opts ...Option) *Catalog {
	c := &Catalog{registry: reg, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Registry returns the registry the catalog creates products with.
func (c *Catalog) Registry() *creator.Registry { return c.registry }

// Create builds a product for tag and appends it. On error nothing is stored.
func (c *Catalog) Create(tag string, raw product.RawData) (Entry, error) {
	return c.add(ActionCreated, tag, raw)
}

// Clone re-creates the entry with the given id using its tag, metadata and
// price, naming it after the original plus CloneSuffix. The clone gets a new id.
func (c *Catalog) Clone(id string) (Entry, error) {
	src, ok := c.Get(id)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		c.reject(ActionCloned, "", err)
		return Entry{}, err
	}
	base := src.Product.Common()
	raw := product.RawData{}
	for k, v := range src.Product.Metadata() {
		raw[k] = v
	}
	raw[product.FieldName] = base.Name + CloneSuffix
	raw[product.FieldPrice] = base.Price
	return c.add(ActionCloned, src.Tag, raw)
}

func (c *Catalog) add(action Action, tag string, raw product.RawData) (Entry, error) {
	p, err := c.registry.Create(tag, raw)
	if err == nil && p == nil {
		err = fmt.Errorf("creator for %q returned no product", tag)
	}
	if err != nil {
		c.reject(action, tag, err)
		return Entry{}, err
	}
	e := Entry{Tag: tag, Product: p, CreatedAt: c.now()}
	c.mu.Lock()
	c.entries = append(c.entries, e)
	size := len(c.entries)
	c.mu.Unlock()

	c.publish(Event{Action: action, Tag: tag, Kind: string(p.Kind()), ProductID: e.ID(), Size: size, Count: 1})
	if c.log != nil {
		c.log.Infow("product "+string(action), map[string]any{
			"tag": tag, "id": e.ID(), "description": p.Describe(),
		})
	}
	return e, nil
}

func (c *Catalog) reject(action Action, tag string, err error) {
	c.publish(Event{Action: ActionRejected, Tag: tag, Size: c.Len(), Err: err})
	if c.log != nil {
		c.log.Warnf("%s rejected for tag %q: %v", action, tag, err)
	}
}

// Remove deletes the entry with the given id.
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		err := fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		c.reject(ActionRemoved, "", err)
		return err
	}
	e := c.entries[idx]
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	size := len(c.entries)
	c.mu.Unlock()

	c.publish(Event{Action: ActionRemoved, Tag: e.Tag, Kind: string(e.Product.Kind()), ProductID: id, Size: size, Count: 1})
	if c.log != nil {
		c.log.Debugf("removed product %s", id)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *Catalog) Clear() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = nil
	c.mu.Unlock()

	c.publish(Event{Action: ActionCleared, Count: n})
	if c.log != nil {
		c.log.Debugf("cleared %d products", n)
	}
	return n
}

// List returns the entries in creation order.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the entry with the given id.
func (c *Catalog) Get(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := c.indexOf(id); idx >= 0 {
		return c.entries[idx], true
	}
	return Entry{}, false
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// indexOf must be called with mu held.
func (c *Catalog) indexOf(id string) int {
	for i, e := range c.entries {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) publish(ev Event) {
	if c.bus == nil {
		return
	}
	ev.Time = c.now()
	c.bus.Publish(ev)
}
