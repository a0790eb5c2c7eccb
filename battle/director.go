package battle

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/wordtitan/challenge"
	"github.com/milk9111/wordtitan/words"
)

var (
	ErrNilBoss = errors.New("battle: boss is nil")
	ErrNilSlot = errors.New("battle: challenge slot is nil")
)

// DirectorConfig tunes the encounter. Start from DefaultDirectorConfig;
// NewDirector and SetConfig apply Normalize.
type DirectorConfig struct {
	BombInterval     time.Duration
	BombsPerInterval int
	BurstSpacing     time.Duration
	SpawnSpreadX     float64
	SpawnOffsetY     float64
	Bomb             BombConfig

	PerfectDefuseToCharge int
	ChargeRepeatCount     int
	RepeatWordDuration    time.Duration
	ChargeWindowStart     float64
	ChargeWindowEnd       float64
	ChargeTotalTimeLimit  time.Duration
	RepeatWordGap         time.Duration
	FailBigDamage         int

	VulnerableDuration time.Duration
}

func DefaultDirectorConfig() DirectorConfig {
	return DirectorConfig{
		BombInterval:          2200 * time.Millisecond,
		BombsPerInterval:      1,
		BurstSpacing:          120 * time.Millisecond,
		SpawnSpreadX:          0.6,
		SpawnOffsetY:          -0.3,
		Bomb:                  DefaultBombConfig(),
		PerfectDefuseToCharge: 6,
		ChargeRepeatCount:     5,
		RepeatWordDuration:    750 * time.Millisecond,
		ChargeWindowStart:     0.35,
		ChargeWindowEnd:       0.55,
		ChargeTotalTimeLimit:  5 * time.Second,
		RepeatWordGap:         50 * time.Millisecond,
		FailBigDamage:         3,
		VulnerableDuration:    4 * time.Second,
	}
}

// Normalize enforces the minimums the encounter relies on.
func (c DirectorConfig) Normalize() DirectorConfig {
	if c.BombsPerInterval < 1 {
		c.BombsPerInterval = 1
	}
	if c.BombInterval < 0 {
		c.BombInterval = 0
	}
	if c.BurstSpacing < 0 {
		c.BurstSpacing = 0
	}
	if c.PerfectDefuseToCharge < 1 {
		c.PerfectDefuseToCharge = 1
	}
	if c.ChargeRepeatCount < 1 {
		c.ChargeRepeatCount = 1
	}
	if c.RepeatWordDuration < 150*time.Millisecond {
		c.RepeatWordDuration = 150 * time.Millisecond
	}
	if c.ChargeTotalTimeLimit < 500*time.Millisecond {
		c.ChargeTotalTimeLimit = 500 * time.Millisecond
	}
	if c.RepeatWordGap < 0 {
		c.RepeatWordGap = 0
	}
	if c.FailBigDamage < 0 {
		c.FailBigDamage = 0
	}
	if c.VulnerableDuration < 100*time.Millisecond {
		c.VulnerableDuration = 100 * time.Millisecond
	}
	return c
}

// Refs are the scene collaborators the director needs for spawning. They may
// be missing at first and are resolved again on later ticks.
type Refs struct {
	Words  words.Source
	Player PlayerTarget
}

func (r Refs) complete() bool {
	return r.Words != nil && r.Player != nil
}

// Mover is the boss movement the director freezes during charge and
// vulnerable phases.
type Mover interface {
	Freeze(frozen bool)
	Position() cp.Vector
}

type DirectorOption func(*Director)

func WithLogger(log zerolog.Logger) DirectorOption {
	return func(d *Director) { d.log = log.With().Str("component", "director").Logger() }
}

func WithRand(rng *rand.Rand) DirectorOption {
	return func(d *Director) { d.rng = rng }
}

func WithMover(m Mover) DirectorOption {
	return func(d *Director) { d.mover = m }
}

func WithPresenter(p challenge.Presenter) DirectorOption {
	return func(d *Director) { d.presenter = p }
}

func WithRefs(refs Refs) DirectorOption {
	return func(d *Director) { d.refs = refs }
}

// WithResolver installs a lookup that fills missing Refs on each tick.
func WithResolver(fn func() Refs) DirectorOption {
	return func(d *Director) { d.resolve = fn }
}

// burst spawns a batch of bombs one at a time, waiting for the previous
// bomb's window to finish and then for the spacing delay.
type burst struct {
	remaining int
	wait      time.Duration
}

// Director cycles the encounter through Normal, Charging and Vulnerable and
// pushes every phase change to the boss in the same call.
type Director struct {
	cfg       DirectorConfig
	boss      *Boss
	slot      *challenge.Slot
	presenter challenge.Presenter
	mover     Mover
	refs      Refs
	resolve   func() Refs
	log       zerolog.Logger
	rng       *rand.Rand

	phase          Phase
	perfect        int
	bombTimer      time.Duration
	burst          *burst
	bombs          []*Bomb
	charge         *challenge.RepeatWord
	chargeAttempts int
	vulnerableLeft time.Duration
	lastTarget     cp.Vector
	result         Result
	missingRefs    bool

	events eventLog
}

func NewDirector(cfg DirectorConfig, boss *Boss, slot *challenge.Slot, opts ...DirectorOption) (*Director, error) {
	if boss == nil {
		return nil, ErrNilBoss
	}
	if slot == nil {
		return nil, ErrNilSlot
	}
	d := &Director{
		cfg:       cfg.Normalize(),
		boss:      boss,
		slot:      slot,
		presenter: challenge.NopPresenter{},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.presenter == nil {
		d.presenter = challenge.NopPresenter{}
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d.syncBoss()
	return d, nil
}

// SetConfig swaps tuning. Running bombs and charges keep the values they
// started with.
func (d *Director) SetConfig(cfg DirectorConfig) {
	if d == nil {
		return
	}
	d.cfg = cfg.Normalize()
	d.log.Info().Msg("tuning reloaded")
}

// Update advances the encounter by dt.
func (d *Director) Update(dt time.Duration) {
	if d == nil || d.result != ResultPending {
		return
	}
	if dt < 0 {
		dt = 0
	}
	d.resolveRefs()
	if d.checkOver() {
		return
	}

	switch d.phase {
	case PhaseNormal:
		d.updateNormal(dt)
	case PhaseCharging:
		d.updateCharging(dt)
	case PhaseVulnerable:
		d.updateVulnerable(dt)
	}

	d.updateBombs(dt)
	d.checkOver()
}

// NotifyBombResolved implements Reporter. Outcomes only count while Normal.
func (d *Director) NotifyBombResolved(success, perfect bool) {
	d.bombResolved(success, perfect, challenge.FailNone)
}

// NotifyBombFailed implements FailureReporter.
func (d *Director) NotifyBombFailed(reason challenge.FailReason) {
	d.bombResolved(false, false, reason)
}

func (d *Director) bombResolved(success, perfect bool, reason challenge.FailReason) {
	if d == nil {
		return
	}
	d.events.push(Event{Kind: EventBombResolved, Phase: d.phase, Success: success, Perfect: perfect, Reason: reason})
	if d.phase != PhaseNormal || d.result != ResultPending {
		return
	}
	if success && perfect {
		d.perfect++
		if d.perfect >= d.cfg.PerfectDefuseToCharge {
			d.enterCharging()
		}
	}
}

func (d *Director) updateNormal(dt time.Duration) {
	if !d.refs.complete() {
		return
	}
	if d.burst != nil {
		d.stepBurst(dt)
		return
	}
	d.bombTimer += dt
	if d.bombTimer < d.cfg.BombInterval {
		return
	}
	d.bombTimer = 0
	d.burst = &burst{remaining: d.cfg.BombsPerInterval}
	d.stepBurst(0)
}

func (d *Director) stepBurst(dt time.Duration) {
	b := d.burst
	if b.wait > 0 {
		b.wait -= dt
		if b.wait > 0 {
			return
		}
	}
	if d.windowBusy() {
		return
	}
	d.spawnBomb()
	b.remaining--
	if b.remaining <= 0 {
		d.burst = nil
		return
	}
	b.wait = d.cfg.BurstSpacing
}

// windowBusy reports whether a live bomb's window is still counting down.
func (d *Director) windowBusy() bool {
	for _, b := range d.bombs {
		if !b.Resolved() && b.Window().Running() {
			return true
		}
	}
	return false
}

func (d *Director) spawnBomb() {
	word := d.refs.Words.RandomWord()
	if word == nil {
		d.log.Warn().Msg("word source is empty, skipping bomb")
		return
	}
	origin := d.origin()
	spread := (d.rng.Float64()*2 - 1) * d.cfg.SpawnSpreadX
	pos := origin.Add(cp.Vector{X: spread, Y: d.cfg.SpawnOffsetY})

	bomb := NewBomb(word, pos, d.cfg.Bomb, BombDeps{
		Slot:      d.slot,
		Presenter: d.presenter,
		Player:    d.refs.Player,
		Reporter:  d,
	})
	bomb.Arm()
	d.bombs = append(d.bombs, bomb)
	d.events.push(Event{Kind: EventBombSpawned, Phase: d.phase, Word: word.Text})
	d.log.Debug().Str("word", word.Text).Float64("x", pos.X).Float64("y", pos.Y).Msg("bomb spawned")
}

func (d *Director) origin() cp.Vector {
	if d.mover != nil {
		return d.mover.Position()
	}
	return cp.Vector{}
}

func (d *Director) updateBombs(dt time.Duration) {
	if d.refs.Player != nil {
		d.lastTarget = d.refs.Player.Position()
	}
	live := d.bombs[:0]
	for _, b := range d.bombs {
		b.Update(dt, d.lastTarget)
		if !b.Resolved() {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(d.bombs); i++ {
		d.bombs[i] = nil
	}
	d.bombs = live
}

func (d *Director) enterCharging() {
	if d.phase == PhaseCharging || d.result != ResultPending {
		return
	}
	d.perfect = 0
	d.burst = nil
	d.setPhase(PhaseCharging)
	d.freeze(true)

	var word *words.Word
	if d.refs.Words != nil {
		word = d.refs.Words.RandomWord()
	}
	if word == nil {
		d.log.Warn().Msg("no word for charge, returning to normal")
		d.setPhase(PhaseNormal)
		d.freeze(false)
		return
	}

	d.charge = challenge.NewRepeatWord(word, challenge.RepeatConfig{
		Repeats:     d.cfg.ChargeRepeatCount,
		PerRepeat:   d.cfg.RepeatWordDuration,
		WindowStart: d.cfg.ChargeWindowStart,
		WindowEnd:   d.cfg.ChargeWindowEnd,
		Budget:      d.cfg.ChargeTotalTimeLimit,
		Gap:         d.cfg.RepeatWordGap,
	}, d.slot, d.presenter)
	d.chargeAttempts = 0
	d.charge.Begin()
	d.events.push(Event{Kind: EventChargeStarted, Phase: d.phase, Word: word.Text, Count: d.cfg.ChargeRepeatCount})
}

func (d *Director) updateCharging(dt time.Duration) {
	if d.charge == nil {
		d.setPhase(PhaseNormal)
		d.freeze(false)
		return
	}
	d.charge.Update(dt)
	d.reportChargeProgress()
	if !d.charge.Done() {
		return
	}

	charge := d.charge
	d.charge = nil
	charge.Release()
	d.events.push(Event{
		Kind:    EventChargeResult,
		Phase:   d.phase,
		Word:    charge.Word().Text,
		Success: charge.Success(),
		Reason:  charge.Reason(),
		Count:   charge.Attempts(),
	})

	if charge.Success() {
		d.enterVulnerable()
		return
	}
	d.failCharging(charge.Reason())
}

func (d *Director) reportChargeProgress() {
	if n := d.charge.Attempts(); n > d.chargeAttempts {
		for i := d.chargeAttempts + 1; i <= n; i++ {
			d.events.push(Event{Kind: EventChargeRepeat, Phase: d.phase, Count: i, Success: true})
		}
		d.chargeAttempts = n
	}
}

func (d *Director) failCharging(reason challenge.FailReason) {
	if d.refs.Player != nil {
		d.refs.Player.TakeDamage(d.cfg.FailBigDamage)
	}
	d.log.Debug().Stringer("reason", reason).Msg("charge failed")
	d.presenter.HideTimingRing()
	d.setPhase(PhaseNormal)
	d.freeze(false)
	d.bombTimer = 0
}

func (d *Director) enterVulnerable() {
	d.burst = nil
	d.setPhase(PhaseVulnerable)
	d.freeze(true)
	d.vulnerableLeft = d.cfg.VulnerableDuration
}

func (d *Director) updateVulnerable(dt time.Duration) {
	d.vulnerableLeft -= dt
	if d.vulnerableLeft > 0 {
		return
	}
	d.vulnerableLeft = 0
	d.setPhase(PhaseNormal)
	d.freeze(false)
	d.bombTimer = 0
}

// setPhase is the only place the phase changes, and it always syncs the boss.
func (d *Director) setPhase(p Phase) {
	from := d.phase
	d.phase = p
	d.syncBoss()
	if from != p {
		d.log.Info().Stringer("from", from).Stringer("to", p).Msg("phase changed")
	}
	d.events.push(Event{Kind: EventPhaseChanged, From: from, Phase: p})
}

func (d *Director) syncBoss() {
	d.boss.SetPhase(d.phase.Mirror())
}

func (d *Director) freeze(frozen bool) {
	if d.mover != nil {
		d.mover.Freeze(frozen)
	}
}

func (d *Director) resolveRefs() {
	if !d.refs.complete() && d.resolve != nil {
		found := d.resolve()
		if d.refs.Words == nil {
			d.refs.Words = found.Words
		}
		if d.refs.Player == nil {
			d.refs.Player = found.Player
		}
	}
	complete := d.refs.complete()
	switch {
	case !complete && !d.missingRefs:
		d.missingRefs = true
		d.log.Warn().Bool("words", d.refs.Words != nil).Bool("player", d.refs.Player != nil).Msg("references missing, spawning paused")
	case complete && d.missingRefs:
		d.missingRefs = false
		d.log.Info().Msg("references resolved, spawning resumed")
	}
}

// checkOver ends the battle when either side is dead.
func (d *Director) checkOver() bool {
	switch {
	case d.boss.IsDead():
		d.finish(ResultWon)
	case d.refs.Player != nil && d.refs.Player.IsDead():
		d.finish(ResultLost)
	default:
		return false
	}
	return true
}

func (d *Director) finish(result Result) {
	if d.result != ResultPending {
		return
	}
	d.result = result
	d.burst = nil
	if d.charge != nil {
		d.charge.Cancel()
		d.charge = nil
	}
	for _, b := range d.bombs {
		b.Discard()
	}
	d.bombs = nil
	d.presenter.HideTimingRing()
	if d.phase != PhaseNormal {
		d.setPhase(PhaseNormal)
	}
	d.freeze(true)
	d.log.Info().Stringer("result", result).Msg("battle over")
	d.events.push(Event{Kind: EventBattleOver, Phase: d.phase, Result: result})
}

// Events returns and clears everything that happened since the last call.
func (d *Director) Events() []Event {
	if d == nil {
		return nil
	}
	return d.events.drain()
}

func (d *Director) Phase() Phase {
	if d == nil {
		return PhaseNormal
	}
	return d.phase
}

func (d *Director) Result() Result {
	if d == nil {
		return ResultPending
	}
	return d.result
}

// PerfectDefuses returns the count toward the next charge.
func (d *Director) PerfectDefuses() int {
	if d == nil {
		return 0
	}
	return d.perfect
}

// Bombs returns the live bombs. Callers must not modify the slice.
func (d *Director) Bombs() []*Bomb {
	if d == nil {
		return nil
	}
	return d.bombs
}

func (d *Director) Charge() *challenge.RepeatWord {
	if d == nil {
		return nil
	}
	return d.charge
}

func (d *Director) VulnerableLeft() time.Duration {
	if d == nil {
		return 0
	}
	return d.vulnerableLeft
}

func (d *Director) Bursting() bool { return d != nil && d.burst != nil }

// DamageOpen reports whether the boss currently accepts typing damage.
func (d *Director) DamageOpen() bool {
	return d != nil && d.boss.IsVulnerableNow()
}

func (d *Director) Config() DirectorConfig {
	if d == nil {
		return DirectorConfig{}
	}
	return d.cfg
}
