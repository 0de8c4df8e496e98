package product

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies a product variant.
type Kind string

const (
	KindGeneric     Kind = "generic"
	KindElectronics Kind = "electronics"
	KindClothing    Kind = "clothing"
	KindBook        Kind = "book"
)

// Kinds lists the built-in variants.
func Kinds() []Kind {
	return []Kind{KindGeneric, KindElectronics, KindClothing, KindBook}
}

// RawData is an untyped field record, typically read from a form.
type RawData map[string]any

// Metadata holds the variant-specific fields of a product keyed by raw field name.
type Metadata map[string]any

// Raw field names understood by the built-in variants.
const (
	FieldName          = "name"
	FieldPrice         = "price"
	FieldBrand         = "brand"
	FieldWarrantyYears = "warrantyYears"
	FieldSize          = "size"
	FieldMaterial      = "material"
	FieldAuthor        = "author"
	FieldPages         = "pages"
)

// Product is implemented by every variant.
type Product interface {
	// Common returns the fields shared by all variants.
	Common() Base
	Kind() Kind
	// Describe returns a human readable one-line description.
	Describe() string
	// Metadata returns the variant-specific fields, excluding name and price.
	Metadata() Metadata
}

// Base carries the fields shared by all variants.
type Base struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Common implements Product.
func (b Base) Common() Base { return b }

func (b Base) quotedName() string { return `"` + b.Name + `"` }

// IDGenerator returns a new product identifier.
type IDGenerator func() string

// NewID generates a random UUIDv4 identifier.
func NewID() string { return uuid.NewString() }

func (g IDGenerator) next() string {
	if g == nil {
		return NewID()
	}
	return g()
}

// FormatPrice renders a price the way descriptions embed it.
func FormatPrice(p float64) string { return fmt.Sprintf("₹%.2f", p) }
