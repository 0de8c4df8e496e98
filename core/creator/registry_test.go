package creator

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/productfactory/core/factory"
	"github.com/kilianp07/productfactory/core/product"
)

func seqIDs() product.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p-%d", n)
	}
}

func TestDefaultRegistry_Builtins(t *testing.T) {
	reg := NewDefaultRegistry(seqIDs())
	assert.Equal(t, []string{"generic", "electronics", "clothing", "book"}, reg.AvailableTypes())

	for _, k := range product.Kinds() {
		p, err := reg.Create(string(k), product.RawData{"name": "x"})
		require.NoError(t, err, "kind %s", k)
		assert.Equal(t, k, p.Kind())
		assert.Contains(t, reg.AvailableTypes(), string(k))
	}
}

func TestRegistry_CreateBook(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	p, err := reg.Create("book", product.RawData{"name": "Dune", "price": "12.5", "author": "Herbert", "pages": 412})
	require.NoError(t, err)
	b, ok := p.(*product.Book)
	require.True(t, ok)
	assert.Equal(t, 12.5, b.Price)
	assert.Equal(t, `"Dune" by Herbert — 412 pages — ₹12.50`, b.Describe())
}

func TestRegistry_CreateElectronicsBadPrice(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	p, err := reg.Create("electronics", product.RawData{"name": "Fan", "price": "bad", "brand": "Acme"})
	require.NoError(t, err)
	e := p.(*product.Electronics)
	assert.Equal(t, 0.0, e.Price)
	assert.Equal(t, 1, e.WarrantyYears)
}

func TestRegistry_UnknownTag(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	p, err := reg.Create("unknown", product.RawData{})
	assert.Nil(t, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, factory.ErrUnregisteredType))
	var ute *factory.UnregisteredTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "unknown", ute.Type)
}

func TestRegistry_RegisterUnregisterWidget(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	want := product.NewGeneric("widget-1", product.RawData{"name": "Widget"})
	var got product.RawData
	reg.Register("widget", Func(func(raw product.RawData) (product.Product, error) {
		got = raw
		return want, nil
	}))

	data := product.RawData{"name": "w"}
	p, err := reg.Create("widget", data)
	require.NoError(t, err)
	assert.Same(t, want, p)
	assert.Equal(t, data, got)
	assert.Contains(t, reg.AvailableTypes(), "widget")

	reg.Unregister("widget")
	_, err = reg.Create("widget", data)
	assert.ErrorIs(t, err, factory.ErrUnregisteredType)
	assert.NotContains(t, reg.AvailableTypes(), "widget")

	// idempotent
	reg.Unregister("widget")
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	reg.Register("book", NewGenericCreator(nil))
	p, err := reg.Create("book", nil)
	require.NoError(t, err)
	assert.Equal(t, product.KindGeneric, p.Kind())
	assert.Equal(t, []string{"generic", "electronics", "clothing", "book"}, reg.AvailableTypes())
}

func TestRegistry_MustOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("base", nil)
	_, err := reg.Create("base", product.RawData{})
	assert.ErrorIs(t, err, ErrMustOverride)

	_, err = Func(nil).Create(nil)
	assert.ErrorIs(t, err, ErrMustOverride)
}

func TestRegistry_Fields(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	names := func(specs []FieldSpec) []string {
		out := make([]string, len(specs))
		for i, s := range specs {
			out[i] = s.Name
		}
		return out
	}
	assert.Equal(t, []string{"name", "price", "author", "pages"}, names(reg.Fields("book")))
	assert.Equal(t, []string{"name", "price", "size", "material"}, names(reg.Fields("clothing")))

	reg.Register("custom", Func(func(product.RawData) (product.Product, error) { return nil, nil }))
	assert.Equal(t, []string{"name", "price"}, names(reg.Fields("custom")))
	assert.Nil(t, reg.Fields("missing"))
}

func TestBuiltin(t *testing.T) {
	for _, k := range product.Kinds() {
		c, ok := Builtin(k, nil)
		require.True(t, ok)
		assert.Equal(t, k, c.Kind())
	}
	_, ok := Builtin("gadget", nil)
	assert.False(t, ok)
}

func TestRegistry_ThreadSafety(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			tag := fmt.Sprintf("alias-%d", i)
			reg.Register(tag, NewBookCreator(nil))
			reg.Unregister(tag)
		}(i)
		go func() {
			defer wg.Done()
			_, err := reg.Create("book", product.RawData{"name": "x"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, reg.AvailableTypes(), 4)
}
