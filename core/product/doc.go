// Package product defines the product variants created by the catalog.
//
// Every variant embeds Base (identifier, name, price) and adds its own fields.
// Variants are built from an untyped RawData record and construction never
// fails: missing or unreadable fields fall back to defaults and the price is
// always finite and non-negative.
//
//	b := product.NewBook(product.NewID(), product.RawData{
//	    "name": "Dune", "price": "12.5", "author": "Herbert", "pages": 412,
//	})
//	b.Describe() // "Dune" by Herbert — 412 pages — ₹12.50
//
// Metadata returns only the variant-specific fields, keyed by their raw field
// names, so feeding it back into a constructor yields an equivalent variant.
package product
