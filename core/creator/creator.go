package creator

import (
	"errors"

	"github.com/kilianp07/productfactory/core/product"
)

// ErrMustOverride is returned when the unspecialized creation step runs.
var ErrMustOverride = errors.New("creator: factory method must be overridden")

// Creator turns a raw field record into exactly one product variant.
type Creator interface {
	Create(raw product.RawData) (product.Product, error)
}

// Func adapts a function to the Creator interface. A nil Func is the
// unspecialized creation step.
type Func func(raw product.RawData) (product.Product, error)

// Create calls f.
func (f Func) Create(raw product.RawData) (product.Product, error) {
	if f == nil {
		return nil, ErrMustOverride
	}
	return f(raw)
}

// FieldSpec describes one form field a creator reads.
type FieldSpec struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"` // text, number or select
	Options []string `json:"options,omitempty"`
}

// FieldDescriber is implemented by creators that declare their form fields.
type FieldDescriber interface {
	Fields() []FieldSpec
}

var baseFieldSpecs = []FieldSpec{
	{Name: product.FieldName, Label: "Name", Type: "text"},
	{Name: product.FieldPrice, Label: "Price", Type: "number"},
}

// VariantCreator builds one built-in product kind.
type VariantCreator struct {
	kind  product.Kind
	ids   product.IDGenerator
	extra []FieldSpec
}

// Create implements Creator. Built-in variants never fail.
func (c *VariantCreator) Create(raw product.RawData) (product.Product, error) {
	p, ok := product.New(c.kind, c.ids, raw)
	if !ok {
		return nil, ErrMustOverride
	}
	return p, nil
}

// Kind returns the variant produced by c.
func (c *VariantCreator) Kind() product.Kind { return c.kind }

// Fields implements FieldDescriber.
func (c *VariantCreator) Fields() []FieldSpec {
	out := make([]FieldSpec, 0, len(baseFieldSpecs)+len(c.extra))
	out = append(out, baseFieldSpecs...)
	return append(out, c.extra...)
}

// NewGenericCreator returns the creator for generic products.
func NewGenericCreator(ids product.IDGenerator) *VariantCreator {
	return &VariantCreator{kind: product.KindGeneric, ids: ids}
}

// NewElectronicsCreator returns the creator for electronics.
func NewElectronicsCreator(ids product.IDGenerator) *VariantCreator {
	return &VariantCreator{kind: product.KindElectronics, ids: ids, extra: []FieldSpec{
		{Name: product.FieldBrand, Label: "Brand", Type: "text"},
		{Name: product.FieldWarrantyYears, Label: "Warranty (years)", Type: "number"},
	}}
}

// NewClothingCreator returns the creator for clothing.
func NewClothingCreator(ids product.IDGenerator) *VariantCreator {
	return &VariantCreator{kind: product.KindClothing, ids: ids, extra: []FieldSpec{
		{Name: product.FieldSize, Label: "Size", Type: "select", Options: product.Sizes},
		{Name: product.FieldMaterial, Label: "Material", Type: "text"},
	}}
}

// NewBookCreator returns the creator for books.
func NewBookCreator(ids product.IDGenerator) *VariantCreator {
	return &VariantCreator{kind: product.KindBook, ids: ids, extra: []FieldSpec{
		{Name: product.FieldAuthor, Label: "Author", Type: "text"},
		{Name: product.FieldPages, Label: "Pages", Type: "number"},
	}}
}

// Builtin returns the built-in creator for kind.
func Builtin(kind product.Kind, ids product.IDGenerator) (*VariantCreator, bool) {
	switch kind {
	case product.KindGeneric:
		return NewGenericCreator(ids), true
	case product.KindElectronics:
		return NewElectronicsCreator(ids), true
	case product.KindClothing:
		return NewClothingCreator(ids), true
	case product.KindBook:
		return NewBookCreator(ids), true
	default:
		return nil, false
	}
}
