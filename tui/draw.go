package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/wordtitan/battle"
)

var (
	styleText       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim        = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBoss       = tcell.StyleDefault.Foreground(tcell.ColorSkyblue).Bold(true)
	styleCharging   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleVulnerable = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBomb       = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleWindow     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	styleError      = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

// Battle units visible across and down the terminal.
const (
	unitsWide = 12.0
	unitsHigh = 9.0
	barWidth  = 20
)

func (a *App) cell(x, y float64) (int, int) {
	w, h := a.screen.Size()
	col := float64(w)/2 + x*float64(w)/unitsWide
	row := float64(h)/2 - y*float64(h-4)/unitsHigh
	return int(math.Round(col)), int(math.Round(row))
}

func (a *App) put(x, y int, s string, style tcell.Style) {
	w, h := a.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range s {
		if x >= 0 && x < w {
			a.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

func (a *App) putCentered(x, y int, s string, style tcell.Style) {
	a.put(x-len([]rune(s))/2, y, s, style)
}

// Draw renders the whole frame.
func (a *App) Draw() {
	a.screen.Clear()
	a.drawHUD()
	a.drawBoss()
	a.drawBombs()
	a.drawPlayer()
	a.drawInput()
	if a.sess.Over() {
		a.drawResult()
	}
	a.screen.Show()
}

func (a *App) drawHUD() {
	boss := a.sess.Boss()
	player := a.sess.Player()
	combo := a.sess.Combo()
	d := a.sess.Director()

	line := fmt.Sprintf("BOSS %d/%d %-10s HP %d/%d  COMBO %d %s x%.2f",
		boss.Health().Current(), boss.Health().Max(), boss.Phase(),
		player.Health().Current(), player.Health().Max(),
		combo.Count(), combo.Mode(), combo.Multiplier())
	a.put(0, 0, line, styleText)

	var status string
	switch a.sess.Phase() {
	case battle.PhaseNormal:
		status = fmt.Sprintf("perfect %d/%d", d.PerfectDefuses(), d.Config().PerfectDefuseToCharge)
	case battle.PhaseCharging:
		status = fmt.Sprintf("repeat %d/%d", d.Charge().Attempts(), d.Config().ChargeRepeatCount)
	case battle.PhaseVulnerable:
		status = fmt.Sprintf("strike! %.1fs", d.VulnerableLeft().Seconds())
	}
	a.put(0, 1, status, styleDim)
}

func (a *App) drawBoss() {
	boss := a.sess.Boss()
	pos := a.sess.Patrol().Position()
	x, y := a.cell(pos.X, pos.Y)

	style := styleBoss
	switch boss.Phase() {
	case battle.BossCharging:
		style = styleCharging
	case battle.BossVulnerable:
		style = styleVulnerable
	}
	a.putCentered(x, y, "[==BOSS==]", style)
	if word := boss.Word(); word != nil {
		a.putCentered(x, y-1, word.Text, style)
	}

	ring := a.sess.Ring()
	if a.sess.Phase() == battle.PhaseCharging && ring.Visible() {
		a.putCentered(x, y+1, strings.ToUpper(ring.Word()), styleCharging)
		start, end := ring.Bounds()
		a.putCentered(x, y+2, ringBar(ring.Progress(), start, end), barStyle(ring.InWindow()))
	}
}

func (a *App) drawBombs() {
	for _, b := range a.sess.Director().Bombs() {
		if b.Resolved() {
			continue
		}
		pos := b.Position()
		x, y := a.cell(pos.X, pos.Y)
		a.put(x, y, "●", styleBomb)
		if word := b.Word(); word != nil {
			a.put(x+2, y, word.Text, styleBomb)
		}
		win := b.Window()
		start, end := win.Bounds()
		a.put(x+2, y+1, ringBar(win.Progress(), start, end), barStyle(win.InWindow()))
	}
}

func (a *App) drawPlayer() {
	pos := a.sess.Player().Position()
	x, y := a.cell(pos.X, pos.Y)
	style := stylePlayer
	if a.sess.Player().Invincible() {
		style = styleDim
	}
	a.putCentered(x, y, "/^\\", style)
}

func (a *App) drawInput() {
	_, h := a.screen.Size()
	style := styleText
	x := 2
	if a.shake > 0 {
		style = styleError
		x += a.shake % 2
	}
	a.put(x, h-2, "> "+string(a.input)+"_", style)
	if a.verdict != "" {
		a.put(x+maxInput+6, h-2, a.verdict, styleDim)
	}
}

func (a *App) drawResult() {
	w, h := a.screen.Size()
	sum := a.sess.Summary()
	title := "DEFEAT"
	if sum.Result == battle.ResultWon {
		title = "VICTORY"
	}
	lines := []string{
		title,
		fmt.Sprintf("best combo %d  accuracy %.0f%%", sum.BestCombo, sum.Accuracy()*100),
		"ctrl+r retry   esc quit",
	}
	for i, line := range lines {
		a.putCentered(w/2, h/2-1+i, line, styleCharging)
	}
}

// ringBar draws a window as a horizontal gauge: '=' marks elapsed time,
// '|' marks the accept band edges.
func ringBar(progress, start, end float64) string {
	bar := []rune(strings.Repeat("-", barWidth))
	filled := int(progress * barWidth)
	for i := 0; i < filled && i < barWidth; i++ {
		bar[i] = '='
	}
	s := int(start * barWidth)
	e := int(end * barWidth)
	if s >= 0 && s < barWidth {
		bar[s] = '|'
	}
	if e >= 0 && e < barWidth {
		bar[e] = '|'
	}
	return "[" + string(bar) + "]"
}

func barStyle(inWindow bool) tcell.Style {
	if inWindow {
		return styleWindow
	}
	return styleDim
}
