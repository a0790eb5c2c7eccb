package battle

import (
	"time"

	"github.com/jakecoffman/cp"
)

// PlayerTarget is what bombs and charge penalties hit.
type PlayerTarget interface {
	TakeDamage(amount int) bool
	Position() cp.Vector
	IsDead() bool
}

type PlayerConfig struct {
	MaxHP          int
	InvincibleTime time.Duration
	Position       cp.Vector
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{MaxHP: 5, InvincibleTime: 350 * time.Millisecond, Position: cp.Vector{X: 0, Y: -3.5}}
}

// PlayerHealth is the player's hit-point pool with a short invincibility
// window after every hit.
type PlayerHealth struct {
	cfg        PlayerConfig
	health     *Health
	invincible time.Duration
	pos        cp.Vector
}

func NewPlayerHealth(cfg PlayerConfig) *PlayerHealth {
	return &PlayerHealth{cfg: cfg, health: NewHealth(cfg.MaxHP, nil), pos: cfg.Position}
}

// TakeDamage implements PlayerTarget. Hits during invincibility are dropped.
func (p *PlayerHealth) TakeDamage(amount int) bool {
	if p == nil || p.invincible > 0 {
		return false
	}
	if !p.health.TakeDamage(amount) {
		return false
	}
	p.invincible = p.cfg.InvincibleTime
	return true
}

func (p *PlayerHealth) Update(dt time.Duration) {
	if p == nil || p.invincible <= 0 {
		return
	}
	p.invincible -= dt
	if p.invincible < 0 {
		p.invincible = 0
	}
}

func (p *PlayerHealth) Reset() {
	if p == nil {
		return
	}
	p.health.Reset(p.cfg.MaxHP)
	p.invincible = 0
	p.pos = p.cfg.Position
}

func (p *PlayerHealth) Invincible() bool { return p != nil && p.invincible > 0 }

func (p *PlayerHealth) IsDead() bool { return p != nil && p.health.IsDead() }

func (p *PlayerHealth) Health() *Health {
	if p == nil {
		return nil
	}
	return p.health
}

func (p *PlayerHealth) Position() cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return p.pos
}

func (p *PlayerHealth) SetPosition(v cp.Vector) {
	if p == nil {
		return
	}
	p.pos = v
}
