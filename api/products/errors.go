package products

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/productfactory/core/catalog"
	"github.com/kilianp07/productfactory/core/factory"
	"github.com/kilianp07/productfactory/core/monitoring"
)

// Error codes returned in ErrorResponse.Code.
const (
	ErrCodeUnregisteredType  = "UNREGISTERED_TYPE"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// classify maps a domain error to its HTTP status and code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, factory.ErrUnregisteredType):
		return http.StatusNotFound, ErrCodeUnregisteredType
	case errors.Is(err, catalog.ErrEntryNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	default:
		// creator.ErrMustOverride lands here: it is a programming defect.
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// writeDomainError reports err with the status matching its kind. Server
// side failures are sent to the monitor.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		monitoring.CaptureException(err, map[string]string{
			"route":      r.Pattern,
			"request_id": RequestID(r.Context()),
		})
	}
	writeError(w, r, status, code, err.Error())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
