package service

import (
	"sync"
	"time"

	"github.com/mytime/console/internal/pkg/clock"
)

// DefaultInactivityTimeout is how long a session may stay idle before it is
// logged out.
const DefaultInactivityTimeout = 30 * time.Minute

// InactivityMonitor is a debounced idle timer. Each Arm cancels the pending
// timeout and schedules a new one, so at most one is ever pending. A timeout
// that fires after being superseded is ignored.
type InactivityMonitor struct {
	clock   clock.Clock
	timeout time.Duration
	onIdle  func()

	mu    sync.Mutex
	timer clock.Timer
	gen   uint64
}

func NewInactivityMonitor(clk clock.Clock, timeout time.Duration, onIdle func()) *InactivityMonitor {
	if timeout <= 0 {
		timeout = DefaultInactivityTimeout
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &InactivityMonitor{clock: clk, timeout: timeout, onIdle: onIdle}
}

// Arm (re)starts the idle countdown.
func (m *InactivityMonitor) Arm() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen
	m.timer = m.clock.AfterFunc(m.timeout, func() { m.fire(gen) })
}

// Stop cancels the pending timeout, if any.
func (m *InactivityMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
}

// Armed reports whether a timeout is pending.
func (m *InactivityMonitor) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timer != nil
}

// Timeout returns the idle threshold.
func (m *InactivityMonitor) Timeout() time.Duration { return m.timeout }

func (m *InactivityMonitor) fire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.timer == nil {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.mu.Unlock()

	if m.onIdle != nil {
		m.onIdle()
	}
}
