package system

import (
	"math/rand/v2"

	"github.com/milk9111/wordtitan/common"
	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
)

// CameraSystem drifts the camera a little toward the boss and applies shake
// requests. The shake offset decays linearly over the requested frames.
type CameraSystem struct {
	camEntity ecs.Entity
	rng       *rand.Rand
	// Follow is how much of the boss's x offset the camera tracks.
	Follow float64
}

func NewCameraSystem(rng *rand.Rand) *CameraSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &CameraSystem{rng: rng, Follow: 0.15}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if req, ok := ecs.Get(w, cs.camEntity, component.CameraShakeRequestComponent.Kind()); ok {
		// A weaker request never cuts a stronger shake short.
		if req.Intensity >= cam.ShakeIntensity || cam.ShakeFrames <= 0 {
			cam.ShakeFrames = req.Frames
			cam.ShakeIntensity = req.Intensity
		}
		ecs.Remove(w, cs.camEntity, component.CameraShakeRequestComponent.Kind())
	}

	cam.ShakeX, cam.ShakeY = 0, 0
	if cam.ShakeFrames > 0 {
		amp := cam.ShakeIntensity
		cam.ShakeX = (cs.rng.Float64()*2 - 1) * amp
		cam.ShakeY = (cs.rng.Float64()*2 - 1) * amp
		cam.ShakeFrames--
		if cam.ShakeFrames > 0 {
			cam.ShakeIntensity = amp * float64(cam.ShakeFrames) / float64(cam.ShakeFrames+1)
		} else {
			cam.ShakeIntensity = 0
		}
	}

	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	targetX := 0.0
	if boss, ok := ecs.First(w, component.BossTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, boss, component.TransformComponent.Kind()); ok {
			targetX = t.X * cs.Follow
		}
	}
	smooth := common.Clamp(cam.Smoothness, 0, 1)
	camTransform.X = common.Lerp(camTransform.X, targetX, smooth)
}
