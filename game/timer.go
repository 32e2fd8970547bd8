package game

import "time"

// Timer is the single pending gravity delay. Reset drops any pending delay
// before arming a new one, so at most one is ever outstanding.
type Timer interface {
	Reset(d time.Duration)
	Stop()
	Pending() bool
}

// Poller is a Timer that is checked from a frame loop instead of signalling.
type Poller interface {
	Timer

	// Fire reports whether the pending delay has elapsed and, if so,
	// disarms the timer.
	Fire() bool
}

// DeadlineTimer is a polled timer. It fires once Fire is called at or after
// the deadline. The clock is injectable for tests and virtual-time drivers.
type DeadlineTimer struct {
	now      func() time.Time
	deadline time.Time
	pending  bool
}

// NewDeadlineTimer creates a disarmed timer reading time from now. A nil
// clock uses time.Now.
func NewDeadlineTimer(now func() time.Time) *DeadlineTimer {
	if now == nil {
		now = time.Now
	}
	return &DeadlineTimer{now: now}
}

func (t *DeadlineTimer) Reset(d time.Duration) {
	t.deadline = t.now().Add(d)
	t.pending = true
}

func (t *DeadlineTimer) Stop() { t.pending = false }

func (t *DeadlineTimer) Pending() bool { return t.pending }

// Deadline returns when the pending delay elapses.
func (t *DeadlineTimer) Deadline() time.Time { return t.deadline }

func (t *DeadlineTimer) Fire() bool {
	if !t.pending || t.now().Before(t.deadline) {
		return false
	}
	t.pending = false
	return true
}

// ChannelTimer wraps time.Timer for goroutine drivers such as Runner.
type ChannelTimer struct {
	t       *time.Timer
	pending bool
}

// NewChannelTimer creates a disarmed timer.
func NewChannelTimer() *ChannelTimer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return &ChannelTimer{t: t}
}

// Reset arms the timer. Since Go 1.23 Stop and Reset discard any value not
// yet received, so a stale tick is never delivered.
func (t *ChannelTimer) Reset(d time.Duration) {
	t.t.Reset(d)
	t.pending = true
}

func (t *ChannelTimer) Stop() {
	t.t.Stop()
	t.pending = false
}

func (t *ChannelTimer) Pending() bool { return t.pending }

// C delivers a value when the pending delay elapses. The receiver must call
// Fired afterwards.
func (t *ChannelTimer) C() <-chan time.Time { return t.t.C }

// Fired marks the delay as consumed.
func (t *ChannelTimer) Fired() { t.pending = false }
