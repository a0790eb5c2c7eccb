package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDiskRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })
	return dir
}

func TestLoadBattleSpecFromEmbed(t *testing.T) {
	withDiskRoot(t)
	spec, err := LoadBattleSpec()
	require.NoError(t, err)

	assert.Equal(t, 2.2, spec.Director.BombInterval)
	assert.Equal(t, 6, spec.Director.PerfectDefuseToCharge)
	assert.Equal(t, 5, spec.Director.ChargeRepeatCount)
	assert.Equal(t, 2.5, spec.Bomb.RingDuration)
	assert.Equal(t, "patrol.tengo", spec.Patrol.Script)
	assert.Equal(t, color.NRGBA{R: 0xf5, G: 0xb0, B: 0x41, A: 0xff}, spec.FX.BombColor.Color)
}

func TestDefaultsFillZeroFields(t *testing.T) {
	spec := BattleSpec{Director: DirectorSpec{BombsPerInterval: 3}}.Defaults()

	assert.Equal(t, 3, spec.Director.BombsPerInterval)
	assert.Equal(t, 2.2, spec.Director.BombInterval)
	assert.Equal(t, -0.3, spec.Director.SpawnOffsetY)
	assert.Equal(t, 0.05, spec.Director.RepeatWordGap)
	assert.Equal(t, 4.0, spec.Director.VulnerableSeconds)
	assert.Equal(t, 10, spec.Boss.MaxHP)
	assert.Equal(t, 0.35, spec.Player.InvincibleTime)
	assert.Equal(t, -3.5, spec.Player.Y)
	assert.Equal(t, 2.0, spec.Combo.MaxMultiplier)
	assert.Equal(t, 48.0, spec.FX.PixelsPerUnit)
}

func TestDiskOverride(t *testing.T) {
	dir := withDiskRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battle.yaml"), []byte("boss:\n  max_hp: 42\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "patrol.tengo"), []byte("offset := func(t) { return 0 }\n"), 0o644))

	spec, err := LoadBattleSpec()
	require.NoError(t, err)
	assert.Equal(t, 42, spec.Boss.MaxHP)
	assert.Equal(t, 2.2, spec.Director.BombInterval, "missing fields fall back to defaults")

	src, err := LoadScript("prefabs/scripts/patrol.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "return 0")

	_, ok := ModTime("battle.yaml")
	assert.True(t, ok)
	_, ok = ModTime("words.yaml")
	assert.False(t, ok)
}

func TestLoadMissingPrefab(t *testing.T) {
	withDiskRoot(t)
	_, err := LoadSpec[BattleSpec]("nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load nope.yaml")
}

func TestLoadWordList(t *testing.T) {
	dir := withDiskRoot(t)
	words, err := LoadWordList("")
	require.NoError(t, err)
	assert.NotEmpty(t, words)
	assert.Equal(t, "apple", words[0].Text)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("words: []\n"), 0o644))
	_, err = LoadWordList("empty.yaml")
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff0080", want: color.NRGBA{R: 255, B: 128, A: 255}},
		{in: "00ff0040", want: color.NRGBA{G: 255, A: 64}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYAMLColorFallback(t *testing.T) {
	var c YAMLColor
	assert.Equal(t, color.White, c.Or(color.White))
}

func TestEntityBuildSpecs(t *testing.T) {
	withDiskRoot(t)
	spec, err := LoadEntityBuildSpec("boss.yaml")
	require.NoError(t, err)
	assert.Equal(t, "boss", spec.Name)
	require.Contains(t, spec.Components, "shape")

	shape, err := DecodeComponentSpec[ShapeComponentSpec](spec.Components["shape"])
	require.NoError(t, err)
	assert.Equal(t, "rect", shape.Kind)
	assert.Equal(t, 1.6, shape.Width)
	assert.NotNil(t, shape.Color.Color)

	empty, err := DecodeComponentSpec[ShapeComponentSpec](nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Width)
}

func TestName(t *testing.T) {
	assert.Equal(t, "battle.yaml", Name(filepath.Join("prefabs", "battle.yaml")))
	assert.Equal(t, "scripts/patrol.tengo", Name("/tmp/x/prefabs/scripts/patrol.tengo"))
	assert.Equal(t, "scripts/patrol.tengo", cleanScriptPath("patrol.tengo"))
	assert.Equal(t, "scripts/patrol.tengo", cleanScriptPath("scripts/patrol.tengo"))
	assert.Equal(t, "words.yaml", cleanPrefabPath("prefabs/words.yaml"))
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battle.yaml"), []byte("boss: {}\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "battle.yaml", filepath.Base(name))
	case <-time.After(3 * time.Second):
		t.Fatal("no watch event")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
