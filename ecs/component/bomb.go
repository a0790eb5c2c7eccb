package component

// BombView mirrors one live bomb for drawing: its word and the state of its
// timing window.
type BombView struct {
	Word        string
	Progress    float64
	WindowStart float64
	WindowEnd   float64
	InWindow    bool
}

var BombViewComponent = NewComponent[BombView]()

// Explosion is a growing ring left behind by a resolved bomb. It is removed
// by its TTL.
type Explosion struct {
	Radius    float64
	MaxRadius float64
	Success   bool
}

var ExplosionComponent = NewComponent[Explosion]()
