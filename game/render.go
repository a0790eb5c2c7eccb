package game

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/common"
	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
)

var (
	backgroundColor = color.NRGBA{R: 0x14, G: 0x17, B: 0x26, A: 0xff}
	ringColor       = color.NRGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
	windowColor     = color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	hudColor        = color.NRGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
)

// ringOuter is how far out, in battle units, a timing ring starts.
const ringOuter = 1.6

type view struct {
	camX, camY     float64
	scale          float64
	shakeX, shakeY float64
}

func (g *Game) view() view {
	v := view{scale: g.fx.PixelsPerUnit}
	if v.scale <= 0 {
		v.scale = 64
	}
	camEnt, ok := ecs.First(g.world, component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if cam, ok := ecs.Get(g.world, camEnt, component.CameraComponent.Kind()); ok {
		if cam.Zoom > 0 {
			v.scale *= cam.Zoom
		}
		v.shakeX, v.shakeY = cam.ShakeX, cam.ShakeY
	}
	if t, ok := ecs.Get(g.world, camEnt, component.TransformComponent.Kind()); ok {
		v.camX, v.camY = t.X, t.Y
	}
	return v
}

// toScreen maps battle units (y up, origin at screen center) to pixels.
func (v view) toScreen(x, y float64) (float32, float32) {
	sx := common.BaseWidth/2 + (x-v.camX)*v.scale + v.shakeX
	sy := common.BaseHeight/2 - (y-v.camY)*v.scale + v.shakeY
	return float32(sx), float32(sy)
}

func (v view) px(units float64) float32 {
	return float32(units * v.scale)
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	w := g.world
	v := g.view()

	var entities []ecs.Entity
	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Transform) {
		entities = append(entities, e)
	})
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		x, y := v.toScreen(t.X, t.Y)

		if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
			fill := shape.Color
			if wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok && wf.On {
				fill = color.White
			}
			switch shape.Kind {
			case component.ShapeCircle:
				vector.FillCircle(screen, x, y, v.px(shape.Radius), fill, true)
			case component.ShapeRect:
				pw, ph := v.px(shape.Width), v.px(shape.Height)
				vector.FillRect(screen, x-pw/2, y-ph/2, pw, ph, fill, false)
			}
		}

		if bomb, ok := ecs.Get(w, e, component.BombViewComponent.Kind()); ok {
			g.drawBombRing(screen, v, x, y, bomb)
		}

		if ex, ok := ecs.Get(w, e, component.ExplosionComponent.Kind()); ok {
			clr := g.fx.ExplosionColor.Or(colornames.Orangered)
			if ex.Success {
				clr = g.fx.WindowColor.Or(windowColor)
			}
			vector.StrokeCircle(screen, x, y, v.px(ex.Radius), 3, clr, true)
		}

		if bar, ok := ecs.Get(w, e, component.HealthBarComponent.Kind()); ok && bar.Max > 0 {
			pw, ph := v.px(bar.Width), v.px(bar.Height)
			bx, by := x-pw/2, y-v.px(bar.OffsetY)-ph/2
			vector.FillRect(screen, bx, by, pw, ph, colornames.Dimgray, false)
			ratio := common.Clamp(float64(bar.Current)/float64(bar.Max), 0, 1)
			vector.FillRect(screen, bx, by, pw*float32(ratio), ph, bar.Color, false)
		}

		if label, ok := ecs.Get(w, e, component.LabelComponent.Kind()); ok && label.Text != "" {
			g.drawCentered(screen, label.Text, x+v.px(label.OffsetX), y-v.px(label.OffsetY), label.Color)
		}
	}
}

// drawBombRing shrinks a ring from ringOuter onto the bomb as its window
// runs. The accept band is drawn as two fixed circles.
func (g *Game) drawBombRing(screen *ebiten.Image, v view, x, y float32, bomb *component.BombView) {
	inner := 0.25
	radius := func(p float64) float32 {
		return v.px(common.Lerp(ringOuter, inner, p))
	}
	band := g.fx.WindowColor.Or(windowColor)
	vector.StrokeCircle(screen, x, y, radius(bomb.WindowStart), 1, band, true)
	vector.StrokeCircle(screen, x, y, radius(bomb.WindowEnd), 1, band, true)

	clr := g.fx.RingColor.Or(ringColor)
	width := float32(2)
	if bomb.InWindow {
		clr = band
		width = 4
	}
	vector.StrokeCircle(screen, x, y, radius(bomb.Progress), width, clr, true)
}

// drawChargeRing draws the repeat-word ring around the boss while charging.
func (g *Game) drawChargeRing(screen *ebiten.Image) {
	ring := g.sess.Ring()
	if !ring.Visible() || g.sess.Phase() != battle.PhaseCharging {
		return
	}
	v := g.view()
	pos := g.sess.Patrol().Position()
	x, y := v.toScreen(pos.X, pos.Y)
	start, end := ring.Bounds()
	g.drawBombRing(screen, v, x, y, &component.BombView{
		Progress:    ring.Progress(),
		WindowStart: start,
		WindowEnd:   end,
		InWindow:    ring.InWindow(),
	})
	g.drawCentered(screen, strings.ToUpper(ring.Word()), x, y-v.px(ringOuter)-16, g.fx.ChargingColor.Or(colornames.Gold))
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	d := g.sess.Director()
	combo := g.sess.Combo()
	cfg := d.Config()

	lines := []string{
		fmt.Sprintf("BOSS %d/%d  %s", g.sess.Boss().Health().Current(), g.sess.Boss().Health().Max(), g.sess.Boss().Phase()),
		fmt.Sprintf("HP %d/%d", g.sess.Player().Health().Current(), g.sess.Player().Health().Max()),
		fmt.Sprintf("COMBO %d (%s x%.2f)  BEST %d", combo.Count(), combo.Mode(), combo.Multiplier(), combo.Best()),
	}
	switch g.sess.Phase() {
	case battle.PhaseNormal:
		lines = append(lines, fmt.Sprintf("PERFECT %d/%d", d.PerfectDefuses(), cfg.PerfectDefuseToCharge))
	case battle.PhaseCharging:
		lines = append(lines, fmt.Sprintf("REPEAT %d/%d", d.Charge().Attempts(), cfg.ChargeRepeatCount))
	case battle.PhaseVulnerable:
		lines = append(lines, fmt.Sprintf("STRIKE! %.1fs", d.VulnerableLeft().Seconds()))
	}
	for i, line := range lines {
		g.drawText(screen, line, 16, 16+float64(i)*18, hudColor)
	}

	e, ok := ecs.First(g.world, component.TypingBufferComponent.Kind())
	if !ok {
		return
	}
	buf, _ := ecs.Get(g.world, e, component.TypingBufferComponent.Kind())
	x := float64(common.BaseWidth/2 - 160)
	if buf.Shake > 0 {
		x += float64((buf.Shake%4)-2) * 3
	}
	y := float64(common.BaseHeight - 48)
	vector.StrokeRect(screen, float32(x-8), float32(y-6), 336, 26, 1, hudColor, false)
	g.drawText(screen, "> "+string(buf.Text)+"_", x, y, hudColor)
	if buf.Verdict != "" {
		g.drawText(screen, buf.Verdict, x+340, y, colornames.Lightgrey)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, g.face, op)
}

func (g *Game) drawCentered(screen *ebiten.Image, s string, x, y float32, clr color.Color) {
	w, h := ebtext.Measure(s, g.face, 0)
	g.drawText(screen, s, float64(x)-w/2, float64(y)-h/2, clr)
}
