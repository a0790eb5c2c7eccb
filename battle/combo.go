package battle

import "math"

// ShotMode is the player's weapon pattern at the current combo.
type ShotMode int

const (
	ShotSingle ShotMode = iota
	ShotDouble
	ShotSpread
)

func (m ShotMode) String() string {
	switch m {
	case ShotDouble:
		return "double"
	case ShotSpread:
		return "spread"
	default:
		return "single"
	}
}

type ComboConfig struct {
	DoubleAt      int
	SpreadAt      int
	Step          float64
	MaxMultiplier float64
}

func DefaultComboConfig() ComboConfig {
	return ComboConfig{DoubleAt: 5, SpreadAt: 10, Step: 0.05, MaxMultiplier: 2}
}

// Combo counts consecutive successes. Any failure breaks it.
type Combo struct {
	cfg   ComboConfig
	count int
	best  int
}

func NewCombo(cfg ComboConfig) *Combo {
	return &Combo{cfg: cfg}
}

func (c *Combo) Hit() {
	if c == nil {
		return
	}
	c.count++
	if c.count > c.best {
		c.best = c.count
	}
}

func (c *Combo) Break() {
	if c == nil {
		return
	}
	c.count = 0
}

func (c *Combo) Count() int {
	if c == nil {
		return 0
	}
	return c.count
}

func (c *Combo) Best() int {
	if c == nil {
		return 0
	}
	return c.best
}

func (c *Combo) Mode() ShotMode {
	switch {
	case c == nil:
		return ShotSingle
	case c.cfg.SpreadAt > 0 && c.count >= c.cfg.SpreadAt:
		return ShotSpread
	case c.cfg.DoubleAt > 0 && c.count >= c.cfg.DoubleAt:
		return ShotDouble
	default:
		return ShotSingle
	}
}

// Multiplier returns 1 + Step per combo, capped at MaxMultiplier.
func (c *Combo) Multiplier() float64 {
	if c == nil {
		return 1
	}
	m := 1 + float64(c.count)*c.cfg.Step
	if c.cfg.MaxMultiplier > 0 {
		m = math.Min(m, c.cfg.MaxMultiplier)
	}
	return m
}
