package prefabs

// BattleSpec is battle.yaml. Durations are seconds. Zero fields take the
// defaults filled in by Defaults; a negative repeat_word_gap means no gap.
type BattleSpec struct {
	Director DirectorSpec `yaml:"director"`
	Boss     BossSpec     `yaml:"boss"`
	Bomb     BombSpec     `yaml:"bomb"`
	Player   PlayerSpec   `yaml:"player"`
	Patrol   PatrolSpec   `yaml:"patrol"`
	Combo    ComboSpec    `yaml:"combo"`
	FX       FXSpec       `yaml:"fx"`
}

type DirectorSpec struct {
	BombInterval          float64 `yaml:"bomb_interval"`
	BombsPerInterval      int     `yaml:"bombs_per_interval"`
	BurstSpacing          float64 `yaml:"burst_spacing"`
	SpawnSpreadX          float64 `yaml:"spawn_spread_x"`
	SpawnOffsetY          float64 `yaml:"spawn_offset_y"`
	PerfectDefuseToCharge int     `yaml:"perfect_defuse_to_charge"`
	ChargeRepeatCount     int     `yaml:"charge_repeat_count"`
	RepeatWordDuration    float64 `yaml:"repeat_word_duration"`
	ChargeWindowStart     float64 `yaml:"charge_window_start"`
	ChargeWindowEnd       float64 `yaml:"charge_window_end"`
	ChargeTotalTimeLimit  float64 `yaml:"charge_total_time_limit"`
	RepeatWordGap         float64 `yaml:"repeat_word_gap"`
	FailBigDamage         int     `yaml:"fail_big_damage"`
	VulnerableSeconds     float64 `yaml:"vulnerable_seconds"`
}

type BossSpec struct {
	MaxHP        int `yaml:"max_hp"`
	DamagePerHit int `yaml:"damage_per_hit"`
}

type BombSpec struct {
	RingDuration float64 `yaml:"ring_duration"`
	WindowStart  float64 `yaml:"window_start"`
	WindowEnd    float64 `yaml:"window_end"`
	Speed        float64 `yaml:"speed"`
	HitDistance  float64 `yaml:"hit_distance"`
	Damage       int     `yaml:"damage"`
}

type PlayerSpec struct {
	MaxHP          int     `yaml:"max_hp"`
	InvincibleTime float64 `yaml:"invincible_time"`
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
}

type PatrolSpec struct {
	CenterX float64 `yaml:"center_x"`
	Y       float64 `yaml:"y"`
	Speed   float64 `yaml:"speed"`
	Range   float64 `yaml:"range"`
	Script  string  `yaml:"script"`
}

type ComboSpec struct {
	DoubleAt      int     `yaml:"double_at"`
	SpreadAt      int     `yaml:"spread_at"`
	Step          float64 `yaml:"step"`
	MaxMultiplier float64 `yaml:"max_multiplier"`
}

// FXSpec tunes the graphical front end only. Frames are update ticks.
type FXSpec struct {
	ShakeFrames     int       `yaml:"shake_frames"`
	ShakeIntensity  float64   `yaml:"shake_intensity"`
	FlashFrames     int       `yaml:"flash_frames"`
	FlashInterval   int       `yaml:"flash_interval"`
	ExplosionFrames int       `yaml:"explosion_frames"`
	PixelsPerUnit   float64   `yaml:"pixels_per_unit"`
	BackgroundColor YAMLColor `yaml:"background_color"`
	RingColor       YAMLColor `yaml:"ring_color"`
	WindowColor     YAMLColor `yaml:"window_color"`
	BombColor       YAMLColor `yaml:"bomb_color"`
	ExplosionColor  YAMLColor `yaml:"explosion_color"`
	VulnerableColor YAMLColor `yaml:"vulnerable_color"`
	ChargingColor   YAMLColor `yaml:"charging_color"`
}

const BattleSpecFile = "battle.yaml"

func LoadBattleSpec() (BattleSpec, error) {
	spec, err := LoadSpec[BattleSpec](BattleSpecFile)
	if err != nil {
		return BattleSpec{}, err
	}
	return spec.Defaults(), nil
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Defaults fills every zero field with the stock tuning.
func (s BattleSpec) Defaults() BattleSpec {
	d := &s.Director
	d.BombInterval = orFloat(d.BombInterval, 2.2)
	d.BombsPerInterval = orInt(d.BombsPerInterval, 1)
	d.BurstSpacing = orFloat(d.BurstSpacing, 0.12)
	d.SpawnSpreadX = orFloat(d.SpawnSpreadX, 0.6)
	d.SpawnOffsetY = orFloat(d.SpawnOffsetY, -0.3)
	d.PerfectDefuseToCharge = orInt(d.PerfectDefuseToCharge, 6)
	d.ChargeRepeatCount = orInt(d.ChargeRepeatCount, 5)
	d.RepeatWordDuration = orFloat(d.RepeatWordDuration, 0.75)
	d.ChargeWindowStart = orFloat(d.ChargeWindowStart, 0.35)
	d.ChargeWindowEnd = orFloat(d.ChargeWindowEnd, 0.55)
	d.ChargeTotalTimeLimit = orFloat(d.ChargeTotalTimeLimit, 5)
	d.RepeatWordGap = orFloat(d.RepeatWordGap, 0.05)
	d.FailBigDamage = orInt(d.FailBigDamage, 3)
	d.VulnerableSeconds = orFloat(d.VulnerableSeconds, 4)

	s.Boss.MaxHP = orInt(s.Boss.MaxHP, 10)
	s.Boss.DamagePerHit = orInt(s.Boss.DamagePerHit, 1)

	b := &s.Bomb
	b.RingDuration = orFloat(b.RingDuration, 2.5)
	b.WindowStart = orFloat(b.WindowStart, 0.35)
	b.WindowEnd = orFloat(b.WindowEnd, 0.55)
	b.Speed = orFloat(b.Speed, 4.5)
	b.HitDistance = orFloat(b.HitDistance, 0.35)
	b.Damage = orInt(b.Damage, 1)

	s.Player.MaxHP = orInt(s.Player.MaxHP, 5)
	s.Player.InvincibleTime = orFloat(s.Player.InvincibleTime, 0.35)
	s.Player.Y = orFloat(s.Player.Y, -3.5)

	s.Patrol.Y = orFloat(s.Patrol.Y, 3.5)
	s.Patrol.Speed = orFloat(s.Patrol.Speed, 2.5)
	s.Patrol.Range = orFloat(s.Patrol.Range, 3.5)

	s.Combo.DoubleAt = orInt(s.Combo.DoubleAt, 5)
	s.Combo.SpreadAt = orInt(s.Combo.SpreadAt, 10)
	s.Combo.Step = orFloat(s.Combo.Step, 0.05)
	s.Combo.MaxMultiplier = orFloat(s.Combo.MaxMultiplier, 2)

	f := &s.FX
	f.ShakeFrames = orInt(f.ShakeFrames, 12)
	f.ShakeIntensity = orFloat(f.ShakeIntensity, 6)
	f.FlashFrames = orInt(f.FlashFrames, 18)
	f.FlashInterval = orInt(f.FlashInterval, 3)
	f.ExplosionFrames = orInt(f.ExplosionFrames, 20)
	f.PixelsPerUnit = orFloat(f.PixelsPerUnit, 48)
	return s
}
