package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type BossTag struct{}

var BossTagComponent = NewComponent[BossTag]()

// HUDTag marks screen-space entities the camera does not move.
type HUDTag struct{}

var HUDTagComponent = NewComponent[HUDTag]()
