package session

import (
	"time"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/prefabs"
)

// Tuning is everything a Session needs besides words.
type Tuning struct {
	Director battle.DirectorConfig
	Boss     battle.BossConfig
	Player   battle.PlayerConfig
	Patrol   battle.PatrolConfig
	Combo    battle.ComboConfig
}

func DefaultTuning() Tuning {
	return Tuning{
		Director: battle.DefaultDirectorConfig(),
		Boss:     battle.DefaultBossConfig(),
		Player:   battle.DefaultPlayerConfig(),
		Patrol:   battle.DefaultPatrolConfig(),
		Combo:    battle.DefaultComboConfig(),
	}
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// TuningFromSpec converts battle.yaml into battle configs. Zero fields are
// expected to be filled by BattleSpec.Defaults first.
func TuningFromSpec(spec prefabs.BattleSpec) Tuning {
	d := spec.Director
	b := spec.Bomb
	return Tuning{
		Director: battle.DirectorConfig{
			BombInterval:     seconds(d.BombInterval),
			BombsPerInterval: d.BombsPerInterval,
			BurstSpacing:     seconds(d.BurstSpacing),
			SpawnSpreadX:     d.SpawnSpreadX,
			SpawnOffsetY:     d.SpawnOffsetY,
			Bomb: battle.BombConfig{
				RingDuration: seconds(b.RingDuration),
				WindowStart:  b.WindowStart,
				WindowEnd:    b.WindowEnd,
				Speed:        b.Speed,
				HitDistance:  b.HitDistance,
				Damage:       b.Damage,
			},
			PerfectDefuseToCharge: d.PerfectDefuseToCharge,
			ChargeRepeatCount:     d.ChargeRepeatCount,
			RepeatWordDuration:    seconds(d.RepeatWordDuration),
			ChargeWindowStart:     d.ChargeWindowStart,
			ChargeWindowEnd:       d.ChargeWindowEnd,
			ChargeTotalTimeLimit:  seconds(d.ChargeTotalTimeLimit),
			RepeatWordGap:         seconds(d.RepeatWordGap),
			FailBigDamage:         d.FailBigDamage,
			VulnerableDuration:    seconds(d.VulnerableSeconds),
		}.Normalize(),
		Boss: battle.BossConfig{
			MaxHP:        spec.Boss.MaxHP,
			DamagePerHit: spec.Boss.DamagePerHit,
		},
		Player: battle.PlayerConfig{
			MaxHP:          spec.Player.MaxHP,
			InvincibleTime: seconds(spec.Player.InvincibleTime),
			Position:       cp.Vector{X: spec.Player.X, Y: spec.Player.Y},
		},
		Patrol: battle.PatrolConfig{
			CenterX: spec.Patrol.CenterX,
			Y:       spec.Patrol.Y,
			Speed:   spec.Patrol.Speed,
			Range:   spec.Patrol.Range,
		},
		Combo: battle.ComboConfig{
			DoubleAt:      spec.Combo.DoubleAt,
			SpreadAt:      spec.Combo.SpreadAt,
			Step:          spec.Combo.Step,
			MaxMultiplier: spec.Combo.MaxMultiplier,
		},
	}
}
