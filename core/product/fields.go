package product

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/kilianp07/productfactory/core/factory"
)

const (
	defaultName     = "Untitled"
	defaultUnknown  = "Unknown"
	defaultSize     = "M"
	defaultWarranty = 1

	// invalidInt marks an integer field whose input could not be read.
	invalidInt = -1
)

// Sizes lists the accepted clothing sizes.
var Sizes = []string{"S", "M", "L", "XL"}

type baseFields struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type electronicsFields struct {
	Brand         string `json:"brand"`
	WarrantyYears int    `json:"warrantyYears"`
}

type clothingFields struct {
	Size     string `json:"size"`
	Material string `json:"material"`
}

type bookFields struct {
	Author string `json:"author"`
	Pages  int    `json:"pages"`
}

// decodeFields fills out from raw. Fields absent from raw keep the value out
// already holds, so callers preset defaults before decoding.
func decodeFields(raw RawData, out any) {
	// The lenient hook turns every scalar into the target kind, so decoding
	// only fails on exotic inputs; whatever was decoded so far is kept.
	_ = factory.DecodeWithHook(raw, out, lenientHook)
}

func decodeBase(id string, raw RawData) Base {
	var f baseFields
	decodeFields(raw, &f)
	return Base{ID: id, Name: textOr(f.Name, defaultName), Price: normalizePrice(f.Price)}
}

// lenientHook coerces raw values to the target field kind. Unreadable numbers
// become NaN (floats) or invalidInt (ints) and are normalized afterwards.
func lenientHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if data == nil {
		return data, nil
	}
	v := reflect.ValueOf(data)
	switch to.Kind() {
	case reflect.Float32, reflect.Float64:
		return toFloat(v), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return toInt(v), nil
	case reflect.String:
		return toText(v), nil
	default:
		return data, nil
	}
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func toInt(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampInt(float64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return clampInt(float64(v.Uint()))
	default:
		return clampInt(toFloat(v))
	}
}

func clampInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return invalidInt
	}
	return int(math.Trunc(f))
}

func toText(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v.Interface())
	default:
		return ""
	}
}

// normalizePrice keeps a price finite and non-negative.
func normalizePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

func textOr(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

func intOr(n, def int) int {
	if n < 0 {
		return def
	}
	return n
}

func sizeOr(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, known := range Sizes {
		if s == known {
			return s
		}
	}
	return defaultSize
}
