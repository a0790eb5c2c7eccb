package common

// Base resolution the game lays out at. Ebiten scales it to the window.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// TPS is the fixed update rate every front end ticks the battle at.
const TPS = 60

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
