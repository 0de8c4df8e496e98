package catalog

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/productfactory/core/creator"
	"github.com/kilianp07/productfactory/core/factory"
	"github.com/kilianp07/productfactory/core/product"
	"github.com/kilianp07/productfactory/internal/eventbus"
)

func newTestCatalog(t *testing.T) (*Catalog, <-chan Event) {
	t.Helper()
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("p-%d", n)
	}
	bus := eventbus.NewTyped[Event]()
	t.Cleanup(bus.Close)
	sub := bus.Subscribe()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := New(creator.NewDefaultRegistry(ids), WithBus(bus), WithClock(func() time.Time { return fixed }))
	return c, sub
}

func next(t *testing.T, sub <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-sub:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event published")
		return Event{}
	}
}

func TestCatalog_CreateAndList(t *testing.T) {
	c, sub := newTestCatalog(t)
	e1, err := c.Create("book", product.RawData{"name": "Dune", "price": "12.5", "author": "Herbert", "pages": 412})
	require.NoError(t, err)
	e2, err := c.Create("clothing", product.RawData{"name": "Tee"})
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, e1.ID(), list[0].ID())
	assert.Equal(t, e2.ID(), list[1].ID())
	assert.Equal(t, "book", list[0].Tag)
	assert.Equal(t, `"Dune" by Herbert — 412 pages — ₹12.50`, list[0].Product.Describe())

	ev := next(t, sub)
	assert.Equal(t, ActionCreated, ev.Action)
	assert.Equal(t, "book", ev.Kind)
	assert.Equal(t, 1, ev.Size)
	assert.Equal(t, e1.ID(), ev.ProductID)
	assert.False(t, ev.Time.IsZero())
}

func TestCatalog_CreateUnknownTag(t *testing.T) {
	c, sub := newTestCatalog(t)
	_, err := c.Create("unknown", product.RawData{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, factory.ErrUnregisteredType))
	assert.Equal(t, 0, c.Len())

	ev := next(t, sub)
	assert.Equal(t, ActionRejected, ev.Action)
	assert.Equal(t, "unknown", ev.Tag)
	assert.ErrorIs(t, ev.Err, factory.ErrUnregisteredType)
}

func TestCatalog_Clone(t *testing.T) {
	c, _ := newTestCatalog(t)
	orig, err := c.Create("electronics", product.RawData{"name": "Fan", "price": 30, "brand": "Acme", "warrantyYears": 2})
	require.NoError(t, err)

	clone, err := c.Clone(orig.ID())
	require.NoError(t, err)

	assert.NotEqual(t, orig.ID(), clone.ID())
	assert.Equal(t, orig.Product.Kind(), clone.Product.Kind())
	assert.Equal(t, orig.Product.Metadata(), clone.Product.Metadata())
	assert.Equal(t, orig.Product.Common().Price, clone.Product.Common().Price)
	assert.Equal(t, "Fan (clone)", clone.Product.Common().Name)
	assert.Equal(t, orig.Tag, clone.Tag)
	assert.Equal(t, 2, c.Len())

	// cloning a clone keeps stacking the suffix
	again, err := c.Clone(clone.ID())
	require.NoError(t, err)
	assert.Equal(t, "Fan (clone) (clone)", again.Product.Common().Name)
}

func TestCatalog_CloneEveryKind(t *testing.T) {
	c, _ := newTestCatalog(t)
	for _, k := range product.Kinds() {
		orig, err := c.Create(string(k), product.RawData{"name": "x", "price": 1.5, "size": "L", "pages": 9})
		require.NoError(t, err)
		clone, err := c.Clone(orig.ID())
		require.NoError(t, err)
		assert.Equal(t, k, clone.Product.Kind())
		assert.Equal(t, orig.Product.Metadata(), clone.Product.Metadata())
		assert.Equal(t, 1.5, clone.Product.Common().Price)
	}
}

func TestCatalog_CloneAfterUnregister(t *testing.T) {
	c, _ := newTestCatalog(t)
	c.Registry().Register("widget", creator.NewGenericCreator(nil))
	orig, err := c.Create("widget", product.RawData{"name": "w"})
	require.NoError(t, err)

	c.Registry().Unregister("widget")
	_, err = c.Clone(orig.ID())
	assert.ErrorIs(t, err, factory.ErrUnregisteredType)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_CloneMissing(t *testing.T) {
	c, sub := newTestCatalog(t)
	_, err := c.Clone("nope")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Equal(t, ActionRejected, next(t, sub).Action)
}

func TestCatalog_Remove(t *testing.T) {
	c, sub := newTestCatalog(t)
	a, _ := c.Create("generic", product.RawData{"name": "a"})
	b, _ := c.Create("generic", product.RawData{"name": "b"})
	next(t, sub)
	next(t, sub)

	require.NoError(t, c.Remove(a.ID()))
	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID(), list[0].ID())

	ev := next(t, sub)
	assert.Equal(t, ActionRemoved, ev.Action)
	assert.Equal(t, a.ID(), ev.ProductID)
	assert.Equal(t, 1, ev.Size)

	assert.ErrorIs(t, c.Remove(a.ID()), ErrEntryNotFound)
	_, ok := c.Get(a.ID())
	assert.False(t, ok)
}

func TestCatalog_Clear(t *testing.T) {
	c, sub := newTestCatalog(t)
	for i := 0; i < 3; i++ {
		_, err := c.Create("book", nil)
		require.NoError(t, err)
		next(t, sub)
	}
	assert.Equal(t, 3, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.List())

	ev := next(t, sub)
	assert.Equal(t, ActionCleared, ev.Action)
	assert.Equal(t, 3, ev.Count)
	assert.Equal(t, 0, ev.Size)

	assert.Equal(t, 0, c.Clear())
}

func TestCatalog_ListIsCopy(t *testing.T) {
	c, _ := newTestCatalog(t)
	_, err := c.Create("book", nil)
	require.NoError(t, err)
	list := c.List()
	list[0] = Entry{}
	assert.Equal(t, "book", c.List()[0].Tag)
}

func TestCatalog_NilProductFromCreator(t *testing.T) {
	c, _ := newTestCatalog(t)
	c.Registry().Register("empty", creator.Func(func(product.RawData) (product.Product, error) { return nil, nil }))
	_, err := c.Create("empty", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCatalog_WithoutBus(t *testing.T) {
	c := New(creator.NewDefaultRegistry(nil))
	e, err := c.Create("generic", nil)
	require.NoError(t, err)
	assert.Equal(t, "Untitled", e.Product.Common().Name)
	require.NoError(t, c.Remove(e.ID()))
}
