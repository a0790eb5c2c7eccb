package component

// CameraShakeRequest asks the camera system to shake for Frames ticks.
// Intensity is in pixels at zoom 1. The request is consumed on the next tick.
type CameraShakeRequest struct {
	Frames    int
	Intensity float64
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
