package system

import (
	"image/color"
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/challenge"
	"github.com/milk9111/wordtitan/common"
	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
	"github.com/milk9111/wordtitan/ecs/entity"
	"github.com/milk9111/wordtitan/prefabs"
	"github.com/milk9111/wordtitan/session"
)

// BattleSystem ticks the session and mirrors it into the world: boss and
// player transforms and health bars, one entity per live bomb, explosions,
// shake and flash requests. Every battle event is re-pushed onto the world
// event queue with its kind as the event type.
type BattleSystem struct {
	sess *session.Session
	fx   prefabs.FXSpec
	dt   time.Duration
	log  zerolog.Logger

	boss      ecs.Entity
	bossColor color.Color
	player    ecs.Entity
	bombs     map[*battle.Bomb]ecs.Entity
}

func NewBattleSystem(sess *session.Session, fx prefabs.FXSpec, log zerolog.Logger) *BattleSystem {
	return &BattleSystem{
		sess:  sess,
		fx:    fx,
		dt:    time.Second / common.TPS,
		log:   log.With().Str("component", "battle_system").Logger(),
		bombs: make(map[*battle.Bomb]ecs.Entity),
	}
}

func (s *BattleSystem) Session() *session.Session {
	if s == nil {
		return nil
	}
	return s.sess
}

// SetFX swaps the effect tuning, typically after a hot reload.
func (s *BattleSystem) SetFX(fx prefabs.FXSpec) {
	if s == nil {
		return
	}
	s.fx = fx
}

func (s *BattleSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.sess == nil {
		return
	}

	s.sess.Update(s.dt)

	s.syncBoss(w)
	s.syncPlayer(w)
	s.syncBombs(w)

	for _, evt := range s.sess.Events() {
		s.react(w, evt)
		w.Events().Push(ecs.Event{Type: string(evt.Kind), Data: evt})
	}
}

func (s *BattleSystem) syncBoss(w *ecs.World) {
	if !ecs.IsAlive(w, s.boss) {
		e, ok := ecs.First(w, component.BossTagComponent.Kind())
		if !ok {
			return
		}
		s.boss = e
	}

	boss := s.sess.Boss()
	pos := s.sess.Patrol().Position()
	if t, ok := ecs.Get(w, s.boss, component.TransformComponent.Kind()); ok {
		t.X = pos.X
		t.Y = pos.Y
	}
	if bar, ok := ecs.Get(w, s.boss, component.HealthBarComponent.Kind()); ok {
		bar.Current = boss.Health().Current()
		bar.Max = boss.Health().Max()
	}
	if label, ok := ecs.Get(w, s.boss, component.LabelComponent.Kind()); ok {
		label.Text = ""
		if word := boss.Word(); word != nil {
			label.Text = word.Text
		}
	}
	if shape, ok := ecs.Get(w, s.boss, component.ShapeComponent.Kind()); ok {
		if s.bossColor == nil {
			s.bossColor = shape.Color
		}
		switch boss.Phase() {
		case battle.BossCharging:
			shape.Color = s.fx.ChargingColor.Or(s.bossColor)
		case battle.BossVulnerable:
			shape.Color = s.fx.VulnerableColor.Or(s.bossColor)
		default:
			shape.Color = s.bossColor
		}
	}
}

func (s *BattleSystem) syncPlayer(w *ecs.World) {
	if !ecs.IsAlive(w, s.player) {
		e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
		if !ok {
			return
		}
		s.player = e
	}

	player := s.sess.Player()
	if t, ok := ecs.Get(w, s.player, component.TransformComponent.Kind()); ok {
		pos := player.Position()
		t.X = pos.X
		t.Y = pos.Y
	}
	if bar, ok := ecs.Get(w, s.player, component.HealthBarComponent.Kind()); ok {
		bar.Current = player.Health().Current()
		bar.Max = player.Health().Max()
	}
}

func (s *BattleSystem) syncBombs(w *ecs.World) {
	live := make(map[*battle.Bomb]bool, len(s.bombs))
	for _, b := range s.sess.Director().Bombs() {
		if b == nil || b.Resolved() {
			continue
		}
		live[b] = true

		e, ok := s.bombs[b]
		if !ok {
			text := ""
			if word := b.Word(); word != nil {
				text = word.Text
			}
			created, err := entity.NewBomb(w, b.Position(), text, s.fx.BombColor.Or(color.NRGBA{R: 0xf5, G: 0xb0, B: 0x41, A: 0xff}))
			if err != nil {
				s.log.Error().Err(err).Msg("create bomb entity")
				continue
			}
			e = created
			s.bombs[b] = e
		}

		pos := b.Position()
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X = pos.X
			t.Y = pos.Y
		}
		if view, ok := ecs.Get(w, e, component.BombViewComponent.Kind()); ok {
			win := b.Window()
			view.Progress = win.Progress()
			view.WindowStart, view.WindowEnd = win.Bounds()
			view.InWindow = win.InWindow()
		}
	}

	for b, e := range s.bombs {
		if live[b] {
			continue
		}
		delete(s.bombs, b)
		ecs.DestroyEntity(w, e)
		if b.Outcome() == challenge.Pending {
			continue
		}
		if _, err := entity.NewExplosion(w, b.Position(), b.Outcome() == challenge.Succeeded, s.fx.ExplosionFrames); err != nil {
			s.log.Error().Err(err).Msg("create explosion")
		}
	}
}

func (s *BattleSystem) react(w *ecs.World, evt battle.Event) {
	switch evt.Kind {
	case battle.EventPlayerHit:
		s.shake(w, 1)
		s.flash(w, s.player)
	case battle.EventBossHit:
		s.flash(w, s.boss)
	case battle.EventChargeResult:
		if !evt.Success {
			s.shake(w, 2)
		}
	case battle.EventBattleOver:
		s.log.Info().Stringer("result", evt.Result).Msg("battle over")
	}
}

func (s *BattleSystem) shake(w *ecs.World, scale float64) {
	if s.fx.ShakeFrames <= 0 {
		return
	}
	camEnt, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	_ = ecs.Add(w, camEnt, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{
		Frames:    s.fx.ShakeFrames,
		Intensity: s.fx.ShakeIntensity * scale,
	})
}

func (s *BattleSystem) flash(w *ecs.World, e ecs.Entity) {
	if s.fx.FlashFrames <= 0 || !ecs.IsAlive(w, e) {
		return
	}
	interval := s.fx.FlashInterval
	if interval <= 0 {
		interval = 5
	}
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{Frames: s.fx.FlashFrames, Interval: interval, On: true})
}
