package system

import (
	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
)

// TTLSystem decrements frame-based TTL components and destroys entities when
// the TTL reaches zero. Explosions grow toward their max radius as they age.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ExplosionComponent.Kind(), func(e ecs.Entity, ex *component.Explosion) {
		ttl, ok := ecs.Get(w, e, component.TTLComponent.Kind())
		if !ok || ttl.Frames <= 0 {
			ex.Radius = ex.MaxRadius
			return
		}
		step := (ex.MaxRadius - ex.Radius) / float64(ttl.Frames)
		ex.Radius += step
	})

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Frames > 0 {
			ttl.Frames--
			if ttl.Frames > 0 {
				return
			}
		}

		ecs.DestroyEntity(w, e)
	})
}
