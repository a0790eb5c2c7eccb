package challenge

import "time"

// MinWindowDuration is the shortest countdown a Window will run.
const MinWindowDuration = 50 * time.Millisecond

// Window is a single countdown with an accept interval expressed as a
// fraction of its total duration. Once the countdown reaches the end it is
// expired and never reports InWindow again, whatever the bounds.
type Window struct {
	elapsed time.Duration
	total   time.Duration
	start   float64
	end     float64
	running bool
	expired bool
}

// Start resets the countdown. Bounds are clamped to [0,1] and swapped when
// reversed.
func (w *Window) Start(d time.Duration, start, end float64) {
	if w == nil {
		return
	}
	if d < MinWindowDuration {
		d = MinWindowDuration
	}
	start, end = clamp01(start), clamp01(end)
	if end < start {
		start, end = end, start
	}
	*w = Window{total: d, start: start, end: end, running: true}
}

// Tick advances the countdown by dt. Negative steps are ignored.
func (w *Window) Tick(dt time.Duration) {
	if w == nil || !w.running || dt <= 0 {
		return
	}
	w.elapsed += dt
	if w.elapsed >= w.total {
		w.elapsed = w.total
		w.running = false
		w.expired = true
	}
}

// Stop halts the countdown without expiring it.
func (w *Window) Stop() {
	if w == nil {
		return
	}
	w.running = false
}

// Progress returns elapsed/total in [0,1].
func (w *Window) Progress() float64 {
	if w == nil || w.total <= 0 {
		return 0
	}
	if w.expired {
		return 1
	}
	p := float64(w.elapsed) / float64(w.total)
	if p > 1 {
		return 1
	}
	return p
}

// InWindow reports whether the countdown is running and progress lies inside
// the accept interval.
func (w *Window) InWindow() bool {
	if w == nil || !w.running {
		return false
	}
	p := w.Progress()
	return p >= w.start && p <= w.end
}

func (w *Window) Running() bool { return w != nil && w.running }

func (w *Window) Expired() bool { return w != nil && w.expired }

// Bounds returns the normalized accept interval.
func (w *Window) Bounds() (start, end float64) {
	if w == nil {
		return 0, 0
	}
	return w.start, w.end
}

func (w *Window) Duration() time.Duration {
	if w == nil {
		return 0
	}
	return w.total
}

func (w *Window) Remaining() time.Duration {
	if w == nil {
		return 0
	}
	return w.total - w.elapsed
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
