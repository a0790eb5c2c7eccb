package system

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
	"github.com/milk9111/wordtitan/ecs/entity"
	"github.com/milk9111/wordtitan/prefabs"
	"github.com/milk9111/wordtitan/session"
	"github.com/milk9111/wordtitan/words"
)

func testTuning() session.Tuning {
	t := session.DefaultTuning()
	t.Director.BombInterval = time.Second
	t.Director.Bomb.Speed = 0
	t.Director.Bomb.RingDuration = time.Second
	t.Player.InvincibleTime = 0
	return t
}

func testFX() prefabs.FXSpec {
	return prefabs.FXSpec{ShakeFrames: 6, ShakeIntensity: 3, FlashFrames: 6, FlashInterval: 2, ExplosionFrames: 4}
}

func newTestSession(t *testing.T, tuning session.Tuning) *session.Session {
	t.Helper()
	lib := words.NewLibrary([]words.Word{{ID: "apple", Text: "Apple"}}, rand.New(rand.NewPCG(1, 2)))
	s, err := session.New(tuning, lib, session.WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)
	return s
}

// newBattleWorld builds the prefab entities a battle scene needs.
func newBattleWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	_, err := entity.NewBoss(w)
	require.NoError(t, err)
	_, err = entity.NewPlayer(w)
	require.NoError(t, err)
	_, err = entity.NewCamera(w)
	require.NoError(t, err)
	_, err = entity.NewTypingLine(w)
	require.NoError(t, err)
	return w
}

// stepUntil runs sys once per frame, collecting pushed events, until cond
// holds or limit frames pass.
func stepUntil(t *testing.T, w *ecs.World, sys ecs.System, limit int, cond func() bool) []ecs.Event {
	t.Helper()
	var events []ecs.Event
	for i := 0; i < limit; i++ {
		if cond() {
			return events
		}
		sys.Update(w)
		events = append(events, w.Events().Drain()...)
	}
	require.FailNow(t, "condition not reached", "after %d frames", limit)
	return nil
}

func bombViews(w *ecs.World) []*component.BombView {
	var out []*component.BombView
	ecs.ForEach(w, component.BombViewComponent.Kind(), func(_ ecs.Entity, v *component.BombView) {
		out = append(out, v)
	})
	return out
}

func explosions(w *ecs.World) []*component.Explosion {
	var out []*component.Explosion
	ecs.ForEach(w, component.ExplosionComponent.Kind(), func(_ ecs.Entity, x *component.Explosion) {
		out = append(out, x)
	})
	return out
}

func eventTypes(events []ecs.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

var nop = zerolog.Nop()
