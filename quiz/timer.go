package quiz

import "time"

// Ticker delivers the engine's once-per-second ticks
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type clockTicker struct {
	t *time.Ticker
}

// NewClockTicker wraps a time.Ticker firing every interval
func NewClockTicker(interval time.Duration) Ticker {
	return &clockTicker{t: time.NewTicker(interval)}
}

func (c *clockTicker) C() <-chan time.Time {
	return c.t.C
}

func (c *clockTicker) Stop() {
	c.t.Stop()
}

// ManualTicker fires only when told to
type ManualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
}

func NewManualTicker() *ManualTicker {
	return &ManualTicker{
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
	}
}

func (m *ManualTicker) C() <-chan time.Time {
	return m.ch
}

func (m *ManualTicker) Stop() {
	select {
	case <-m.stopped:
	default:
		close(m.stopped)
	}
}

// Fire delivers one tick. It returns false once the ticker was stopped or
// nobody took the tick within the timeout.
func (m *ManualTicker) Fire(timeout time.Duration) bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-m.stopped:
		return false
	case <-time.After(timeout):
		return false
	}
}

// Stopped is closed once the consumer stopped the ticker
func (m *ManualTicker) Stopped() <-chan struct{} {
	return m.stopped
}
