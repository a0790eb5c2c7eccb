package system

import (
	"path"

	"github.com/rs/zerolog"

	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/prefabs"
	"github.com/milk9111/wordtitan/session"
)

// ChangeSource yields changed prefab paths without blocking. prefabs.Watcher
// satisfies it.
type ChangeSource interface {
	Poll() (string, bool)
}

// HotReloadSystem re-reads battle.yaml and the patrol script when they change
// on disk and pushes the new values into the running session.
type HotReloadSystem struct {
	changes ChangeSource
	sess    *session.Session
	script  string
	log     zerolog.Logger

	// OnSpec, if set, receives every successfully reloaded battle spec.
	OnSpec func(prefabs.BattleSpec)
}

func NewHotReloadSystem(changes ChangeSource, sess *session.Session, script string, log zerolog.Logger) *HotReloadSystem {
	return &HotReloadSystem{
		changes: changes,
		sess:    sess,
		script:  path.Base(script),
		log:     log.With().Str("component", "hot_reload").Logger(),
	}
}

func (s *HotReloadSystem) Update(w *ecs.World) {
	if s == nil || s.changes == nil || s.sess == nil {
		return
	}
	for {
		changed, ok := s.changes.Poll()
		if !ok {
			return
		}
		s.apply(prefabs.Name(changed))
	}
}

func (s *HotReloadSystem) apply(name string) {
	switch {
	case name == prefabs.BattleSpecFile:
		s.reloadSpec()
	case s.script != "" && name == "scripts/"+s.script:
		s.reloadScript()
	}
}

func (s *HotReloadSystem) reloadSpec() {
	spec, err := prefabs.LoadBattleSpec()
	if err != nil {
		s.log.Error().Err(err).Msg("reload battle spec")
		return
	}
	s.sess.Retune(session.TuningFromSpec(spec))
	if s.OnSpec != nil {
		s.OnSpec(spec)
	}
	s.log.Info().Msg("battle spec reloaded")

	if script := path.Base(spec.Patrol.Script); spec.Patrol.Script != "" && script != s.script {
		s.script = script
		s.reloadScript()
	}
}

func (s *HotReloadSystem) reloadScript() {
	fn, err := session.LoadPatrolScript(s.script, s.log)
	if err != nil {
		s.log.Error().Err(err).Str("script", s.script).Msg("reload patrol script")
		return
	}
	s.sess.SetPatrolOffset(fn)
	s.log.Info().Str("script", s.script).Msg("patrol script reloaded")
}
