package products

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kilianp07/productfactory/core/monitoring"
	"github.com/kilianp07/productfactory/infra/logger"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestID returns the id assigned by the request id middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// withRequestID keeps a valid incoming UUID or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, id)))
	})
}

// withRecover turns a handler panic into a 500 and reports it.
func withRecover(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			monitoring.CapturePanic(v, map[string]string{
				"path":       r.URL.Path,
				"request_id": RequestID(r.Context()),
			})
			log.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, v)
			writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests beyond the limiter's budget. A nil limiter
// lets everything through.
func withRateLimit(l *rate.Limiter, next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, r, http.StatusTooManyRequests, ErrCodeRateLimitExceeded, "rate limit exceeded")
			return
		}
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%g", float64(l.Limit())))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", int(l.Tokens())))
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withLogging logs every completed request at debug level.
func withLogging(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debugw("request completed", map[string]any{
			"request_id": RequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		})
	})
}
