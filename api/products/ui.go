package products

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/kilianp07/productfactory/core/product"
	"github.com/kilianp07/productfactory/pkg/export"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"label": Label}).
	ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Types    []TypeInfo
	Products []export.Record
	Error    string
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Types:    h.Types(),
		Products: export.FromEntries(h.catalog.List()),
		Error:    r.URL.Query().Get("error"),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.log.Errorf("render index: %v", err)
	}
}

// uiCreate reads the type selector and every other non-empty form value as
// raw product fields. Empty inputs count as missing so defaults apply.
func (h *Handler) uiCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirect(w, r, err.Error())
		return
	}
	tag := r.PostForm.Get("type")
	raw := product.RawData{}
	for k, vs := range r.PostForm {
		if k == "type" || len(vs) == 0 || strings.TrimSpace(vs[0]) == "" {
			continue
		}
		raw[k] = vs[0]
	}
	_, err := h.catalog.Create(tag, raw)
	redirect(w, r, errText(err))
}

func (h *Handler) uiClone(w http.ResponseWriter, r *http.Request) {
	_, err := h.catalog.Clone(r.PathValue("id"))
	redirect(w, r, errText(err))
}

func (h *Handler) uiRemove(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, errText(h.catalog.Remove(r.PathValue("id"))))
}

func (h *Handler) uiClear(w http.ResponseWriter, r *http.Request) {
	h.catalog.Clear()
	redirect(w, r, "")
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// redirect sends the browser back to the page, carrying msg as a notice.
func redirect(w http.ResponseWriter, r *http.Request, msg string) {
	target := "/"
	if msg != "" {
		target += "?error=" + url.QueryEscape(msg)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
