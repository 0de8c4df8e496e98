package monitoring

import (
	"fmt"
	"sync"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// CapturePanic reports a value obtained from recover().
	CapturePanic(v any, tags map[string]string)
	Flush(timeout time.Duration)
}

// NopMonitor discards everything.
type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) CapturePanic(any, map[string]string)      {}
func (NopMonitor) Flush(time.Duration)                      {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init sets the global monitor implementation. A nil monitor restores NopMonitor.
func Init(m Monitor) {
	if m == nil {
		m = NopMonitor{}
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

// Current returns the global monitor.
func Current() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	Current().CaptureException(err, tags)
}

// CapturePanic records a recovered panic value.
func CapturePanic(v any, tags map[string]string) {
	if v == nil {
		return
	}
	Current().CapturePanic(v, tags)
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	Current().Flush(d)
}

// PanicError wraps a recovered value that is not an error.
func PanicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}
