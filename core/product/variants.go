package product

import "fmt"

// Generic is a product with only a name and a price.
type Generic struct {
	Base
}

// NewGeneric builds a Generic product from raw fields.
func NewGeneric(id string, raw RawData) *Generic {
	return &Generic{Base: decodeBase(id, raw)}
}

func (p *Generic) Kind() Kind { return KindGeneric }

func (p *Generic) Describe() string {
	return fmt.Sprintf("%s — %s", p.quotedName(), FormatPrice(p.Price))
}

func (p *Generic) Metadata() Metadata { return Metadata{} }

// Electronics adds a brand and a warranty period.
type Electronics struct {
	Base
	Brand         string `json:"brand"`
	WarrantyYears int    `json:"warrantyYears"`
}

// NewElectronics builds an Electronics product from raw fields.
func NewElectronics(id string, raw RawData) *Electronics {
	f := electronicsFields{WarrantyYears: defaultWarranty}
	decodeFields(raw, &f)
	return &Electronics{
		Base:          decodeBase(id, raw),
		Brand:         textOr(f.Brand, defaultUnknown),
		WarrantyYears: intOr(f.WarrantyYears, defaultWarranty),
	}
}

func (p *Electronics) Kind() Kind { return KindElectronics }

func (p *Electronics) Describe() string {
	return fmt.Sprintf("%s by %s — %d yr warranty — %s",
		p.quotedName(), p.Brand, p.WarrantyYears, FormatPrice(p.Price))
}

func (p *Electronics) Metadata() Metadata {
	return Metadata{FieldBrand: p.Brand, FieldWarrantyYears: p.WarrantyYears}
}

// Clothing adds a size and a material.
type Clothing struct {
	Base
	Size     string `json:"size"`
	Material string `json:"material"`
}

// NewClothing builds a Clothing product from raw fields.
func NewClothing(id string, raw RawData) *Clothing {
	var f clothingFields
	decodeFields(raw, &f)
	return &Clothing{
		Base:     decodeBase(id, raw),
		Size:     sizeOr(f.Size),
		Material: textOr(f.Material, defaultUnknown),
	}
}

func (p *Clothing) Kind() Kind { return KindClothing }

func (p *Clothing) Describe() string {
	return fmt.Sprintf("%s — size %s, %s — %s",
		p.quotedName(), p.Size, p.Material, FormatPrice(p.Price))
}

func (p *Clothing) Metadata() Metadata {
	return Metadata{FieldSize: p.Size, FieldMaterial: p.Material}
}

// Book adds an author and a page count.
type Book struct {
	Base
	Author string `json:"author"`
	Pages  int    `json:"pages"`
}

// NewBook builds a Book product from raw fields.
func NewBook(id string, raw RawData) *Book {
	var f bookFields
	decodeFields(raw, &f)
	return &Book{
		Base:   decodeBase(id, raw),
		Author: textOr(f.Author, defaultUnknown),
		Pages:  intOr(f.Pages, 0),
	}
}

func (p *Book) Kind() Kind { return KindBook }

func (p *Book) Describe() string {
	return fmt.Sprintf("%s by %s — %d pages — %s",
		p.quotedName(), p.Author, p.Pages, FormatPrice(p.Price))
}

func (p *Book) Metadata() Metadata {
	return Metadata{FieldAuthor: p.Author, FieldPages: p.Pages}
}

// New builds the variant for kind. Unknown kinds report false.
func New(kind Kind, ids IDGenerator, raw RawData) (Product, bool) {
	id := ids.next()
	switch kind {
	case KindGeneric:
		return NewGeneric(id, raw), true
	case KindElectronics:
		return NewElectronics(id, raw), true
	case KindClothing:
		return NewClothing(id, raw), true
	case KindBook:
		return NewBook(id, raw), true
	default:
		return nil, false
	}
}
