// Package tui is the terminal front end. It runs the same session as the
// window, drawn as text with tcell.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/common"
	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/system"
	"github.com/milk9111/wordtitan/session"
)

type Ledger interface {
	system.Recorder
	StartSession(seed int64) (uuid.UUID, error)
}

type Config struct {
	Assets  session.Assets
	Seed    int64
	Log     zerolog.Logger
	Ledger  Ledger
	Changes system.ChangeSource
}

const maxInput = 32

// App owns one battle on a tcell screen. Stats and hot reload run as ECS
// systems over a world that only carries the frame's events.
type App struct {
	screen tcell.Screen
	cfg    Config
	log    zerolog.Logger
	dt     time.Duration

	sess      *session.Session
	world     *ecs.World
	scheduler *ecs.Scheduler

	round   uint64
	input   []rune
	verdict string
	shake   int
	quit    bool
}

// New builds the battle. The caller owns screen and must have called Init.
func New(screen tcell.Screen, cfg Config) (*App, error) {
	if screen == nil {
		return nil, errors.New("tui: nil screen")
	}
	a := &App{
		screen: screen,
		cfg:    cfg,
		log:    cfg.Log.With().Str("component", "tui").Logger(),
		dt:     time.Second / common.TPS,
	}
	if err := a.start(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) start() error {
	a.round++
	rng := rand.New(rand.NewPCG(uint64(a.cfg.Seed), a.round))
	sess, err := session.FromAssets(a.cfg.Assets, a.cfg.Log, session.WithRand(rng))
	if err != nil {
		return fmt.Errorf("tui: new session: %w", err)
	}

	scheduler := ecs.NewScheduler()
	if a.cfg.Changes != nil {
		scheduler.Add(system.NewHotReloadSystem(a.cfg.Changes, sess, a.cfg.Assets.Spec.Patrol.Script, a.cfg.Log))
	}
	if a.cfg.Ledger != nil {
		id, err := a.cfg.Ledger.StartSession(a.cfg.Seed)
		if err != nil {
			a.log.Error().Err(err).Msg("stats unavailable for this battle")
		} else {
			scheduler.Add(system.NewStatsSystem(a.cfg.Ledger, id, sess, a.cfg.Log))
		}
	}

	a.sess = sess
	a.world = ecs.NewWorld()
	a.scheduler = scheduler
	a.input = a.input[:0]
	a.verdict = ""
	a.shake = 0
	return nil
}

// Run drives the battle at a fixed tick until the player quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go pollEvents(ctx, a.screen, events)

	ticker := time.NewTicker(a.dt)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleEvent(ev)
			if a.quit {
				return nil
			}
		case <-ticker.C:
			a.Step()
			a.Draw()
		}
	}
}

// pollEvents forwards screen events to out until the screen is finalized or
// ctx ends. out is closed only in the first case.
func pollEvents(ctx context.Context, screen tcell.Screen, out chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(out)
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Step advances the battle one tick.
func (a *App) Step() {
	if a.shake > 0 {
		a.shake--
	}
	a.sess.Update(a.dt)
	for _, evt := range a.sess.Events() {
		a.world.Events().Push(ecs.Event{Type: string(evt.Kind), Data: evt})
	}
	a.scheduler.Update(a.world)
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			a.quit = true
		case tcell.KeyCtrlR:
			if a.sess.Over() {
				if err := a.start(); err != nil {
					a.log.Error().Err(err).Msg("retry")
					a.quit = true
				}
			}
		case tcell.KeyEnter:
			a.Submit()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			a.Backspace()
		case tcell.KeyRune:
			a.Type(ev.Rune())
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

func (a *App) Type(r rune) {
	if a.sess.Over() || !unicode.IsPrint(r) || len(a.input) >= maxInput {
		return
	}
	a.input = append(a.input, r)
}

func (a *App) Backspace() {
	if len(a.input) > 0 {
		a.input = a.input[:len(a.input)-1]
	}
}

// Submit sends the input line to the session.
func (a *App) Submit() battle.Verdict {
	v := a.sess.Submit(string(a.input))
	if v == battle.VerdictEmpty {
		return v
	}
	a.input = a.input[:0]
	a.verdict = v.String()
	if v == battle.VerdictRejected || v == battle.VerdictMiss {
		a.shake = 12
	}
	a.world.Events().Push(ecs.Event{Type: system.EventSubmission, Data: v})
	return v
}

func (a *App) Session() *session.Session { return a.sess }
