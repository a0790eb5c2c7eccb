package battle

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
)

// OffsetFunc maps patrol phase to a horizontal offset, nominally in [-1,1].
type OffsetFunc func(t float64) float64

type PatrolConfig struct {
	CenterX float64
	Y       float64
	Speed   float64
	Range   float64
}

func DefaultPatrolConfig() PatrolConfig {
	return PatrolConfig{CenterX: 0, Y: 3.5, Speed: 2.5, Range: 3.5}
}

// Patrol sweeps the boss back and forth along a fixed row. While frozen the
// boss holds still and patrol time does not advance.
type Patrol struct {
	cfg    PatrolConfig
	offset OffsetFunc
	t      float64
	frozen bool
	pos    cp.Vector
}

func NewPatrol(cfg PatrolConfig) *Patrol {
	p := &Patrol{cfg: cfg, offset: math.Sin}
	p.pos = p.at(0)
	return p
}

// SetOffset replaces the sweep pattern. Nil restores the sine sweep.
func (p *Patrol) SetOffset(fn OffsetFunc) {
	if p == nil {
		return
	}
	if fn == nil {
		fn = math.Sin
	}
	p.offset = fn
}

func (p *Patrol) SetConfig(cfg PatrolConfig) {
	if p == nil {
		return
	}
	p.cfg = cfg
}

func (p *Patrol) Update(dt time.Duration) {
	if p == nil || p.frozen || dt <= 0 {
		return
	}
	p.t += dt.Seconds()
	p.pos = p.at(p.t)
}

func (p *Patrol) at(t float64) cp.Vector {
	off := p.offset(t * p.cfg.Speed)
	if math.IsNaN(off) || math.IsInf(off, 0) {
		off = 0
	}
	return cp.Vector{X: p.cfg.CenterX + off*p.cfg.Range, Y: p.cfg.Y}
}

// Freeze implements Mover.
func (p *Patrol) Freeze(frozen bool) {
	if p == nil {
		return
	}
	p.frozen = frozen
}

func (p *Patrol) Frozen() bool { return p != nil && p.frozen }

// Position implements Mover.
func (p *Patrol) Position() cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return p.pos
}
