package challenge

import "time"

// Presenter displays the timing ring for whoever currently runs a window.
// Calls are fire-and-forget.
type Presenter interface {
	ShowTimingRing(word string, d time.Duration, start, end float64)
	HideTimingRing()
}

type NopPresenter struct{}

func (NopPresenter) ShowTimingRing(string, time.Duration, float64, float64) {}
func (NopPresenter) HideTimingRing()                                        {}

// Tracker is implemented by presenters that read the live Window instead of
// counting down on their own.
type Tracker interface {
	Track(w *Window)
}

// ShowWindow shows the ring for w and hands w to p when p is a Tracker.
func ShowWindow(p Presenter, word string, w *Window) {
	if p == nil || w == nil {
		return
	}
	start, end := w.Bounds()
	p.ShowTimingRing(word, w.Duration(), start, end)
	if t, ok := p.(Tracker); ok {
		t.Track(w)
	}
}

// Ring is a display-side Presenter front ends draw from. Given a live Window
// through Track it reports that window exactly; otherwise it runs its own
// countdown. It stays visible at full progress until hidden.
type Ring struct {
	word    string
	window  Window
	live    *Window
	visible bool
}

func (r *Ring) ShowTimingRing(word string, d time.Duration, start, end float64) {
	if r == nil {
		return
	}
	r.word = word
	r.window.Start(d, start, end)
	r.live = nil
	r.visible = true
}

// Track implements Tracker. It applies to the ring currently shown.
func (r *Ring) Track(w *Window) {
	if r == nil || !r.visible {
		return
	}
	r.live = w
}

func (r *Ring) HideTimingRing() {
	if r == nil {
		return
	}
	r.window.Stop()
	r.live = nil
	r.visible = false
}

// Update advances the ring's own countdown. A tracked ring ignores it.
func (r *Ring) Update(dt time.Duration) {
	if r == nil || !r.visible || r.live != nil {
		return
	}
	r.window.Tick(dt)
}

func (r *Ring) current() *Window {
	if r.live != nil {
		return r.live
	}
	return &r.window
}

func (r *Ring) Visible() bool { return r != nil && r.visible }

func (r *Ring) Word() string {
	if r == nil {
		return ""
	}
	return r.word
}

func (r *Ring) Progress() float64 {
	if r == nil {
		return 0
	}
	return r.current().Progress()
}

func (r *Ring) Bounds() (float64, float64) {
	if r == nil {
		return 0, 0
	}
	return r.current().Bounds()
}

func (r *Ring) InWindow() bool {
	return r != nil && r.visible && r.current().InWindow()
}

func presenterOrNop(p Presenter) Presenter {
	if p == nil {
		return NopPresenter{}
	}
	return p
}
