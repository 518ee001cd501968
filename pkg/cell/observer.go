package cell

import (
	"sync/atomic"
	"time"
)

// Observer defines hooks for observability and metrics collection.
// Hooks are called with the store lock held and must not use the store.
type Observer interface {
	// OnSet is called after a primitive cell changes value.
	OnSet(cell string)

	// OnRecompute is called after a derived cell is recomputed.
	OnRecompute(cell string, duration time.Duration)

	// OnNotify is called when subscribers of a cell are scheduled for notification.
	OnNotify(cell string, listeners int)

	// OnError is called when a read or write fails.
	OnError(cell string, operation string, err error)
}

// NoopObserver is a no-op implementation of Observer.
type NoopObserver struct{}

func (n *NoopObserver) OnSet(cell string)                               {}
func (n *NoopObserver) OnRecompute(cell string, duration time.Duration) {}
func (n *NoopObserver) OnNotify(cell string, listeners int)             {}
func (n *NoopObserver) OnError(cell string, operation string, err error) {}

// MetricsObserver counts store activity. Counters are atomic so a snapshot can
// be taken from any goroutine.
type MetricsObserver struct {
	setCount        atomic.Int64
	recomputeCount  atomic.Int64
	notifyCount     atomic.Int64
	errorCount      atomic.Int64
	recomputeTimeNs atomic.Int64
}

// NewMetricsObserver creates a new metrics observer.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (m *MetricsObserver) OnSet(cell string) {
	m.setCount.Add(1)
}

func (m *MetricsObserver) OnRecompute(cell string, duration time.Duration) {
	m.recomputeCount.Add(1)
	m.recomputeTimeNs.Add(int64(duration))
}

func (m *MetricsObserver) OnNotify(cell string, listeners int) {
	m.notifyCount.Add(int64(listeners))
}

func (m *MetricsObserver) OnError(cell string, operation string, err error) {
	m.errorCount.Add(1)
}

// Snapshot returns a copy of the current counters.
func (m *MetricsObserver) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		SetCount:       m.setCount.Load(),
		RecomputeCount: m.recomputeCount.Load(),
		NotifyCount:    m.notifyCount.Load(),
		ErrorCount:     m.errorCount.Load(),
		RecomputeTime:  time.Duration(m.recomputeTimeNs.Load()),
	}
}

// Reset clears all counters.
func (m *MetricsObserver) Reset() {
	m.setCount.Store(0)
	m.recomputeCount.Store(0)
	m.notifyCount.Store(0)
	m.errorCount.Store(0)
	m.recomputeTimeNs.Store(0)
}

// MetricsSnapshot is a point-in-time snapshot of store metrics.
type MetricsSnapshot struct {
	SetCount       int64         `json:"setCount"`
	RecomputeCount int64         `json:"recomputeCount"`
	NotifyCount    int64         `json:"notifyCount"`
	ErrorCount     int64         `json:"errorCount"`
	RecomputeTime  time.Duration `json:"recomputeTimeNs"`
}
