package component

// Camera centers the view. ShakeX/ShakeY are the current shake offset in
// pixels, refreshed every tick by the camera system.
type Camera struct {
	Zoom       float64
	Smoothness float64

	ShakeFrames    int
	ShakeIntensity float64
	ShakeX         float64
	ShakeY         float64
}

var CameraComponent = NewComponent[Camera]()
