package component

// WhiteFlash blinks an entity white. Timing is in update ticks.
type WhiteFlash struct {
	// Frames left for the whole effect.
	Frames int
	// Interval is the ticks between toggles.
	Interval int
	Timer    int
	On       bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
