package product

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook_Describe(t *testing.T) {
	b := NewBook("id-1", RawData{"name": "Dune", "price": "12.5", "author": "Herbert", "pages": 412})
	assert.Equal(t, 12.5, b.Price)
	assert.Equal(t, `"Dune" by Herbert — 412 pages — ₹12.50`, b.Describe())
	assert.Equal(t, Metadata{"author": "Herbert", "pages": 412}, b.Metadata())
	assert.Equal(t, KindBook, b.Kind())
	assert.Equal(t, "id-1", b.Common().ID)
}

func TestNewElectronics_Defaults(t *testing.T) {
	e := NewElectronics("id", RawData{"name": "Fan", "price": "bad", "brand": "Acme"})
	assert.Equal(t, 0.0, e.Price)
	assert.Equal(t, 1, e.WarrantyYears)
	assert.Equal(t, "Acme", e.Brand)
	assert.Equal(t, `"Fan" by Acme — 1 yr warranty — ₹0.00`, e.Describe())
}

func TestNewElectronics_WarrantyInputs(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"int", 3, 3},
		{"string", "2", 2},
		{"float truncated", 2.9, 2},
		{"zero", 0, 0},
		{"negative", -4, 1},
		{"garbage", "lots", 1},
		{"bool", true, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := NewElectronics("id", RawData{"warrantyYears": c.in})
			assert.Equal(t, c.want, e.WarrantyYears)
		})
	}
}

func TestPriceNormalization(t *testing.T) {
	cases := []struct {
		name string
		raw  RawData
		want float64
	}{
		{"missing", RawData{}, 0},
		{"nil", RawData{"price": nil}, 0},
		{"empty string", RawData{"price": ""}, 0},
		{"garbage", RawData{"price": "abc"}, 0},
		{"negative", RawData{"price": -3.5}, 0},
		{"negative string", RawData{"price": "-1"}, 0},
		{"nan", RawData{"price": math.NaN()}, 0},
		{"nan string", RawData{"price": "NaN"}, 0},
		{"inf", RawData{"price": math.Inf(1)}, 0},
		{"inf string", RawData{"price": "+Inf"}, 0},
		{"map", RawData{"price": map[string]any{"x": 1}}, 0},
		{"int", RawData{"price": 7}, 7},
		{"spaced string", RawData{"price": " 9.99 "}, 9.99},
		{"float", RawData{"price": 4.25}, 4.25},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, k := range Kinds() {
				p, ok := New(k, func() string { return "x" }, c.raw)
				require.True(t, ok)
				price := p.Common().Price
				assert.Equal(t, c.want, price, "kind %s", k)
				assert.False(t, math.IsNaN(price))
				assert.GreaterOrEqual(t, price, 0.0)
			}
		})
	}
}

func TestNameDefaults(t *testing.T) {
	assert.Equal(t, "Untitled", NewGeneric("id", RawData{}).Name)
	assert.Equal(t, "Untitled", NewGeneric("id", RawData{"name": "   "}).Name)
	assert.Equal(t, "42", NewGeneric("id", RawData{"name": 42}).Name)
	assert.Equal(t, "Lamp", NewGeneric("id", RawData{"name": " Lamp "}).Name)
}

func TestNewGeneric(t *testing.T) {
	g := NewGeneric("id", RawData{"name": "Lamp", "price": 12.5})
	assert.Equal(t, `"Lamp" — ₹12.50`, g.Describe())
	assert.Empty(t, g.Metadata())
	assert.Equal(t, KindGeneric, g.Kind())
}

func TestNewClothing(t *testing.T) {
	c := NewClothing("id", RawData{"name": "Tee", "price": "5", "size": "xl", "material": "Cotton"})
	assert.Equal(t, "XL", c.Size)
	assert.Equal(t, `"Tee" — size XL, Cotton — ₹5.00`, c.Describe())
	assert.Equal(t, Metadata{"size": "XL", "material": "Cotton"}, c.Metadata())

	d := NewClothing("id", RawData{"size": "XXL"})
	assert.Equal(t, "M", d.Size)
	assert.Equal(t, "Unknown", d.Material)
}

func TestNewBook_Defaults(t *testing.T) {
	b := NewBook("id", RawData{"pages": "many"})
	assert.Equal(t, "Unknown", b.Author)
	assert.Equal(t, 0, b.Pages)
	assert.Equal(t, "Untitled", b.Name)
}

func TestMetadataRoundTrip(t *testing.T) {
	orig := []Product{
		NewElectronics("a", RawData{"brand": "Acme", "warrantyYears": 3}),
		NewClothing("b", RawData{"size": "L", "material": "Wool"}),
		NewBook("c", RawData{"author": "Le Guin", "pages": 300}),
		NewGeneric("d", RawData{}),
	}
	for _, p := range orig {
		again, ok := New(p.Kind(), nil, RawData(p.Metadata()))
		require.True(t, ok)
		assert.Equal(t, p.Metadata(), again.Metadata(), "kind %s", p.Kind())
		assert.NotEqual(t, p.Common().ID, again.Common().ID)
	}
}

func TestNew_UnknownKind(t *testing.T) {
	p, ok := New("gadget", nil, RawData{})
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, seen[id])
		seen[id] = true
	}
}
