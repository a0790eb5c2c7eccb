package session

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/milk9111/wordtitan/prefabs"
	"github.com/milk9111/wordtitan/words"
)

// Assets is everything read from prefabs for one battle.
type Assets struct {
	Spec    prefabs.BattleSpec
	Tuning  Tuning
	Library *words.Library
}

// LoadAssets reads battle.yaml and the word list. An empty wordsFile means
// words.yaml.
func LoadAssets(wordsFile string, rng *rand.Rand) (Assets, error) {
	spec, err := prefabs.LoadBattleSpec()
	if err != nil {
		return Assets{}, err
	}
	entries, err := prefabs.LoadWordList(wordsFile)
	if err != nil {
		return Assets{}, err
	}
	lib := words.NewLibrary(entries, rng)
	if err := lib.Validate(); err != nil {
		return Assets{}, fmt.Errorf("session: %w", err)
	}
	return Assets{Spec: spec, Tuning: TuningFromSpec(spec), Library: lib}, nil
}

// FromAssets builds a session and installs the patrol script named in the
// spec. A script that fails to load leaves the sine sweep in place.
func FromAssets(a Assets, log zerolog.Logger, opts ...Option) (*Session, error) {
	s, err := New(a.Tuning, a.Library, append([]Option{WithLogger(log)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if name := a.Spec.Patrol.Script; name != "" {
		fn, err := LoadPatrolScript(name, s.log)
		if err != nil {
			s.log.Error().Err(err).Msg("patrol script unavailable, using sine")
		} else {
			s.SetPatrolOffset(fn)
		}
	}
	return s, nil
}
