package products

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/kilianp07/productfactory/core/catalog"
	"github.com/kilianp07/productfactory/core/creator"
	"github.com/kilianp07/productfactory/core/product"
	"github.com/kilianp07/productfactory/infra/logger"
	"github.com/kilianp07/productfactory/pkg/export"
)

// maxBodyBytes bounds API request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the browser UI and the JSON API over a catalog.
type Handler struct {
	catalog  *catalog.Catalog
	log      logger.Logger
	limiter  *rate.Limiter
	validate *validator.Validate
}

// Option customizes a Handler.
type Option func(*Handler)

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// WithRateLimit limits API requests to limit per second with the given
// burst. A non-positive limit disables limiting.
func WithRateLimit(limit float64, burst int) Option {
	return func(h *Handler) {
		if limit <= 0 {
			h.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	}
}

// NewHandler returns a Handler for c.
func NewHandler(c *catalog.Catalog, opts ...Option) *Handler {
	h := &Handler{catalog: c, log: logger.NopLogger{}, validate: validator.New()}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Routes returns the complete HTTP handler.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /ui/products", h.uiCreate)
	mux.HandleFunc("POST /ui/products/{id}/clone", h.uiClone)
	mux.HandleFunc("POST /ui/products/{id}/remove", h.uiRemove)
	mux.HandleFunc("POST /ui/clear", h.uiClear)

	api := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, withRateLimit(h.limiter, fn))
	}
	api("GET /api/types", h.listTypes)
	api("GET /api/products", h.listProducts)
	api("POST /api/products", h.createProduct)
	api("GET /api/products/export", h.exportProducts)
	api("GET /api/products/{id}", h.getProduct)
	api("POST /api/products/{id}/clone", h.cloneProduct)
	api("DELETE /api/products/{id}", h.removeProduct)
	api("DELETE /api/products", h.clearProducts)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return withRequestID(withRecover(h.log, withLogging(h.log, mux)))
}

// TypeInfo describes a registered product type.
type TypeInfo struct {
	Type   string              `json:"type"`
	Label  string              `json:"label"`
	Fields []creator.FieldSpec `json:"fields"`
}

// Types lists the registered types in registration order.
func (h *Handler) Types() []TypeInfo {
	reg := h.catalog.Registry()
	tags := reg.AvailableTypes()
	out := make([]TypeInfo, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TypeInfo{Type: tag, Label: Label(tag), Fields: reg.Fields(tag)})
	}
	return out
}

// Label turns a type tag into a display label: "gift_card" -> "Gift Card".
func Label(tag string) string {
	words := strings.NewReplacer("_", " ", "-", " ").Replace(tag)
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(words)
}

// CreateRequest is the body of POST /api/products.
type CreateRequest struct {
	Type   string          `json:"type" validate:"required"`
	Fields product.RawData `json:"fields"`
}

func (h *Handler) listTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Types())
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, export.FromEntries(h.catalog.List()))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, ok := h.catalog.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("%s: %s", catalog.ErrEntryNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, export.FromEntry(e))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	e, err := h.catalog.Create(req.Type, req.Fields)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, export.FromEntry(e))
}

func (h *Handler) cloneProduct(w http.ResponseWriter, r *http.Request) {
	e, err := h.catalog.Clone(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, export.FromEntry(e))
}

func (h *Handler) removeProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Remove(r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"removed": h.catalog.Clear()})
}

func (h *Handler) exportProducts(w http.ResponseWriter, r *http.Request) {
	format := export.Format(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = export.FormatJSON
	}
	var buf strings.Builder
	if err := export.Write(&buf, format, export.FromEntries(h.catalog.List())); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=products.%s", format))
	_, _ = w.Write([]byte(buf.String()))
}
