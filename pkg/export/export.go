package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/productfactory/core/catalog"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by Write for unsupported formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported formats.
func Formats() []Format { return []Format{FormatJSON, FormatCSV, FormatYAML} }

// Record is the exported view of a catalog entry.
type Record struct {
	ID          string         `json:"id" yaml:"id"`
	Tag         string         `json:"type" yaml:"type"`
	Kind        string         `json:"kind" yaml:"kind"`
	Name        string         `json:"name" yaml:"name"`
	Price       float64        `json:"price" yaml:"price"`
	Description string         `json:"description" yaml:"description"`
	Metadata    map[string]any `json:"metadata" yaml:"metadata"`
	CreatedAt   time.Time      `json:"created_at" yaml:"created_at"`
}

// FromEntry converts a catalog entry.
func FromEntry(e catalog.Entry) Record {
	base := e.Product.Common()
	return Record{
		ID:          base.ID,
		Tag:         e.Tag,
		Kind:        string(e.Product.Kind()),
		Name:        base.Name,
		Price:       base.Price,
		Description: e.Product.Describe(),
		Metadata:    e.Product.Metadata(),
		CreatedAt:   e.CreatedAt,
	}
}

// FromEntries converts entries preserving their order. The result is never nil.
func FromEntries(entries []catalog.Entry) []Record {
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}

// Write encodes records to w in the given format.
func Write(w io.Writer, format Format, records []Record) error {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatYAML:
		return WriteYAML(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ContentType returns the MIME type for format.
func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// WriteJSON writes the records to w in JSON format.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteYAML writes the records to w as a YAML sequence.
func WriteYAML(w io.Writer, records []Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

// WriteCSV writes the records to w in CSV format. Metadata is flattened to
// key=value pairs sorted by key and joined with semicolons.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "type", "kind", "name", "price", "description", "metadata", "created_at"}); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			r.ID,
			r.Tag,
			r.Kind,
			r.Name,
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			r.Description,
			flatten(r.Metadata),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func flatten(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, m[k])
	}
	return strings.Join(parts, ";")
}
