// Package scroll tells a list screen when its viewport nears the end of the
// content.
//
// Observations are coalesced: however many scroll events arrive, at most one
// evaluation runs per frame interval, using the latest geometry. A screen
// holds a Lease while it is shown; frames of a released lease never fire.
package scroll

import "time"

const (
	// DefaultThreshold is the distance in lines from the end of the content
	// at which the next page is wanted
	DefaultThreshold = 5
	// DefaultFrameInterval is the coalescing window for observations
	DefaultFrameInterval = 16 * time.Millisecond
)

// Geometry is the viewport position over the rendered content, in lines
type Geometry struct {
	Offset         int
	ViewportHeight int
	ContentHeight  int
}

// Remaining is the number of content lines below the viewport. It is
// negative when the content does not fill the viewport.
func (g Geometry) Remaining() int {
	return g.ContentHeight - (g.Offset + g.ViewportHeight)
}

// Lease identifies one acquisition of the signal
type Lease uint64

// Frame is a scheduled evaluation
type Frame struct {
	Lease Lease
	Seq   uint64
}

// Signal evaluates scroll proximity for the screen holding the lease
type Signal struct {
	threshold int
	interval  time.Duration

	active    Lease
	lastLease Lease
	seq       uint64
	pending   bool
	latest    Geometry
}

// New creates a signal. Non-positive arguments fall back to the defaults,
// except a zero threshold which means "at the very end".
func New(threshold int, interval time.Duration) *Signal {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Signal{threshold: threshold, interval: interval}
}

// Interval is the delay to wait before delivering a scheduled Frame
func (s *Signal) Interval() time.Duration {
	return s.interval
}

// Threshold is the proximity distance in lines
func (s *Signal) Threshold() int {
	return s.threshold
}

// Acquire starts observation for a newly shown screen. Any previous lease
// is released.
func (s *Signal) Acquire() Lease {
	s.lastLease++
	s.active = s.lastLease
	s.pending = false
	return s.active
}

// Release ends observation for lease; a stale lease is ignored
func (s *Signal) Release(l Lease) {
	if l != s.active {
		return
	}
	s.active = 0
	s.pending = false
}

// Active reports whether l is the current lease
func (s *Signal) Active(l Lease) bool {
	return l != 0 && l == s.active
}

// Observe records the latest geometry. It returns a Frame to schedule when
// no evaluation is pending yet; otherwise the pending one will see g.
func (s *Signal) Observe(l Lease, g Geometry) (Frame, bool) {
	if !s.Active(l) {
		return Frame{}, false
	}
	s.latest = g
	if s.pending {
		return Frame{}, false
	}
	s.pending = true
	s.seq++
	return Frame{Lease: l, Seq: s.seq}, true
}

// Fire evaluates a delivered Frame and reports whether the viewport is
// approaching the end. Frames of released leases report false.
func (s *Signal) Fire(f Frame) bool {
	if !s.Active(f.Lease) || !s.pending || f.Seq != s.seq {
		return false
	}
	s.pending = false
	return s.latest.Remaining() <= s.threshold
}
