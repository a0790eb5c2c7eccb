package system

import (
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
	"github.com/milk9111/wordtitan/ecs/entity"
)

func newCameraWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	cam, err := entity.NewCamera(w)
	require.NoError(t, err)
	return w, cam
}

func TestCameraShakeDecays(t *testing.T) {
	w, cam := newCameraWorld(t)
	sys := NewCameraSystem(rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, ecs.Add(w, cam, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{Frames: 3, Intensity: 4}))

	sys.Update(w)
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	assert.False(t, ecs.Has(w, cam, component.CameraShakeRequestComponent.Kind()))
	assert.Equal(t, 2, c.ShakeFrames)
	assert.LessOrEqual(t, c.ShakeX, 4.0)
	assert.GreaterOrEqual(t, c.ShakeX, -4.0)

	sys.Update(w)
	sys.Update(w)
	assert.Equal(t, 0, c.ShakeFrames)
	assert.Zero(t, c.ShakeIntensity)

	sys.Update(w)
	assert.Zero(t, c.ShakeX)
	assert.Zero(t, c.ShakeY)
}

func TestCameraWeakShakeDoesNotInterrupt(t *testing.T) {
	w, cam := newCameraWorld(t)
	sys := NewCameraSystem(rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, ecs.Add(w, cam, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{Frames: 10, Intensity: 8}))
	sys.Update(w)

	require.NoError(t, ecs.Add(w, cam, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{Frames: 2, Intensity: 1}))
	sys.Update(w)
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	assert.Equal(t, 8, c.ShakeFrames)
}

func TestCameraFollowsBoss(t *testing.T) {
	w, cam := newCameraWorld(t)
	boss, err := entity.NewBoss(w)
	require.NoError(t, err)
	require.NoError(t, entity.SetEntityTransform(w, boss, 2, 3.5))

	sys := NewCameraSystem(nil)
	for i := 0; i < 200; i++ {
		sys.Update(w)
	}
	tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	assert.InDelta(t, 2*sys.Follow, tr.X, 1e-6)
}

func TestWhiteFlashExpires(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{Frames: 4, Interval: 2, On: true}))
	sys := NewWhiteFlashSystem()

	sys.Update(w)
	wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind())
	require.True(t, ok)
	assert.True(t, wf.On)

	sys.Update(w)
	assert.False(t, wf.On)
	assert.Equal(t, 2, wf.Frames)

	sys.Update(w)
	sys.Update(w)
	assert.False(t, ecs.Has(w, e, component.WhiteFlashComponent.Kind()))
	assert.True(t, ecs.IsAlive(w, e))
}

func TestTTLGrowsExplosionThenDestroys(t *testing.T) {
	w := ecs.NewWorld()
	e, err := entity.NewExplosion(w, cp.Vector{X: 1}, false, 2)
	require.NoError(t, err)
	sys := NewTTLSystem()

	sys.Update(w)
	require.True(t, ecs.IsAlive(w, e))
	x, ok := ecs.Get(w, e, component.ExplosionComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, x.MaxRadius/2, x.Radius, 1e-9)

	sys.Update(w)
	assert.False(t, ecs.IsAlive(w, e))
}
