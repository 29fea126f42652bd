// Package progress implements a small shared progress double the worker
// updates as it scans, and the UI polls, using try-lock publish so a
// busy worker never stalls the UI's frame cadence and a busy UI never
// stalls the worker.
package progress

import "sync"

// State is a snapshot of scan progress.
type State struct {
	Busy     bool
	Fraction float64 // in [0, 1]
}

// Channel is the mutex-guarded progress double. The zero value is ready
// to use (Idle, Fraction 0).
type Channel struct {
	mu    sync.Mutex
	state State
}

// New returns an idle Channel.
func New() *Channel {
	return &Channel{}
}

// Snapshot returns the current State. It always blocks for the lock: the
// UI's read path is expected to be cheap and non-contended, unlike the
// worker's publish path.
func (c *Channel) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Begin marks the channel busy at fraction 0, called once before a scan
// pass starts.
func (c *Channel) Begin() {
	c.mu.Lock()
	c.state = State{Busy: true, Fraction: 0}
	c.mu.Unlock()
}

// TryUpdate attempts to publish fraction without blocking. It returns
// false if the UI currently holds the lock (e.g. mid-Snapshot), in which
// case the worker simply proceeds to the next page rather than waiting:
// progress publication must never stall the scan.
func (c *Channel) TryUpdate(fraction float64) bool {
	if !c.mu.TryLock() {
		return false
	}
	c.state.Fraction = fraction
	c.mu.Unlock()
	return true
}

// Finish marks the channel idle at fraction 1, called once a scan pass
// completes (successfully or not).
func (c *Channel) Finish() {
	c.mu.Lock()
	c.state = State{Busy: false, Fraction: 1}
	c.mu.Unlock()
}
