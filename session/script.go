package session

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/prefabs"
)

const offsetDispatch = `
__out = offset(__t)
`

// CompileOffset compiles a tengo script that defines offset(t) into a patrol
// offset function. If the script fails at run time the returned function
// logs once and falls back to a sine sweep for the rest of its life.
func CompileOffset(name string, src []byte, log zerolog.Logger) (battle.OffsetFunc, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), offsetDispatch...))
	_ = script.Add("__t", 0.0)
	_ = script.Add("__out", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("session: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("session: run %s: %w", name, err)
	}

	broken := false
	return func(t float64) float64 {
		if broken {
			return math.Sin(t)
		}
		if err := compiled.Set("__t", t); err == nil {
			err = compiled.Run()
			if err == nil {
				return compiled.Get("__out").Float()
			}
			log.Error().Err(err).Str("script", name).Msg("patrol script failed, using sine")
		}
		broken = true
		return math.Sin(t)
	}, nil
}

// LoadPatrolScript reads scripts/<name> through prefabs and compiles it.
func LoadPatrolScript(name string, log zerolog.Logger) (battle.OffsetFunc, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("session: load %s: %w", name, err)
	}
	return CompileOffset(name, src, log)
}
