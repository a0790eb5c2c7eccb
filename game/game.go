// Package game is the windowed front end: an ebiten Game that owns one ECS
// world per battle and draws it.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/ebitenui/ebitenui"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/wordtitan/common"
	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/entity"
	"github.com/milk9111/wordtitan/ecs/system"
	"github.com/milk9111/wordtitan/prefabs"
	"github.com/milk9111/wordtitan/session"
)

// Ledger opens battle records and receives their events. stats.Store
// satisfies it.
type Ledger interface {
	system.Recorder
	StartSession(seed int64) (uuid.UUID, error)
}

type Config struct {
	Assets session.Assets
	Seed   int64
	Log    zerolog.Logger
	// Ledger is optional. Without it nothing is recorded.
	Ledger Ledger
	// Changes is optional. With it battle.yaml and the patrol script reload
	// while playing.
	Changes system.ChangeSource
	Debug   bool
}

type Game struct {
	cfg  Config
	log  zerolog.Logger
	face ebtext.Face
	keys *keyboard

	world     *ecs.World
	scheduler *ecs.Scheduler
	battle    *system.BattleSystem
	sess      *session.Session
	fx        prefabs.FXSpec
	round     uint64

	ui     *ebitenui.UI
	paused bool
	over   bool
	quit   bool
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.Assets.Library == nil {
		return nil, errors.New("game: no word library")
	}
	g := &Game{
		cfg:  cfg,
		log:  cfg.Log.With().Str("component", "game").Logger(),
		face: ebtext.NewGoXFace(basicfont.Face7x13),
		keys: newKeyboard(cfg.Log),
		fx:   cfg.Assets.Spec.FX,
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

// start builds a fresh world and session. Retry calls it again.
func (g *Game) start() error {
	g.round++
	rng := rand.New(rand.NewPCG(uint64(g.cfg.Seed), g.round))
	sess, err := session.FromAssets(g.cfg.Assets, g.cfg.Log, session.WithRand(rng))
	if err != nil {
		return fmt.Errorf("game: new session: %w", err)
	}

	w := ecs.NewWorld()
	for _, build := range []func(*ecs.World) (ecs.Entity, error){entity.NewBoss, entity.NewPlayer, entity.NewCamera, entity.NewTypingLine} {
		if _, err := build(w); err != nil {
			return fmt.Errorf("game: build world: %w", err)
		}
	}

	g.battle = system.NewBattleSystem(sess, g.fx, g.cfg.Log)
	scheduler := ecs.NewScheduler(
		system.NewTypingInputSystem(sess, g.keys),
		g.battle,
	)
	if g.cfg.Changes != nil {
		reload := system.NewHotReloadSystem(g.cfg.Changes, sess, g.cfg.Assets.Spec.Patrol.Script, g.cfg.Log)
		reload.OnSpec = func(spec prefabs.BattleSpec) {
			g.fx = spec.FX
			g.battle.SetFX(spec.FX)
		}
		scheduler.Add(reload)
	}
	scheduler.Add(system.NewCameraSystem(rng))
	scheduler.Add(system.NewWhiteFlashSystem())
	scheduler.Add(system.NewTTLSystem())
	if g.cfg.Ledger != nil {
		id, err := g.cfg.Ledger.StartSession(g.cfg.Seed)
		if err != nil {
			g.log.Error().Err(err).Msg("stats unavailable for this battle")
		} else {
			scheduler.Add(system.NewStatsSystem(g.cfg.Ledger, id, sess, g.cfg.Log))
		}
	}

	g.world = w
	g.scheduler = scheduler
	g.sess = sess
	g.ui = nil
	g.paused = false
	g.over = false
	g.log.Info().Uint64("round", g.round).Msg("battle started")
	return nil
}

func (g *Game) Retry() {
	if err := g.start(); err != nil {
		g.log.Error().Err(err).Msg("retry")
		g.quit = true
	}
}

func (g *Game) Resume() {
	g.paused = false
	g.ui = nil
}

func (g *Game) Quit() { g.quit = true }

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if !g.over && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.paused {
			g.Resume()
		} else {
			g.paused = true
			g.ui = NewMenuUI(g, "Paused", nil)
		}
	}

	if g.paused || g.over {
		if g.ui != nil {
			g.ui.Update()
		}
		return nil
	}

	g.scheduler.Update(g.world)

	if g.sess.Over() {
		g.over = true
		sum := g.sess.Summary()
		g.ui = NewMenuUI(g, resultTitle(sum), summaryLines(sum))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.fx.BackgroundColor.Or(backgroundColor))
	g.drawWorld(screen)
	g.drawChargeRing(screen)
	g.drawHUD(screen)

	if g.cfg.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, common.BaseHeight-20)
	}

	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
