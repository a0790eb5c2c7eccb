package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/common"
	"github.com/milk9111/wordtitan/session"
)

// NewMenuUI builds the centered panel shown while paused and after a battle.
// A paused game offers Resume; a finished one offers Retry.
func NewMenuUI(g *Game, title string, lines []string) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(center),
	))
	for _, line := range lines {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(line, &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
			widget.TextOpts.WidgetOpts(center),
		))
	}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	if g.over {
		panel.AddChild(button("Retry", g.Retry))
	} else {
		panel.AddChild(button("Resume", g.Resume))
	}
	panel.AddChild(button("Quit", g.Quit))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func resultTitle(sum session.Summary) string {
	switch sum.Result {
	case battle.ResultWon:
		return "Victory"
	case battle.ResultLost:
		return "Defeat"
	default:
		return "Battle over"
	}
}

func summaryLines(sum session.Summary) []string {
	return []string{
		fmt.Sprintf("Time %s", sum.Elapsed.Round(100*time.Millisecond)),
		fmt.Sprintf("Boss HP %d/%d   Your HP %d/%d", sum.BossHP, sum.BossMaxHP, sum.PlayerHP, sum.PlayerMaxHP),
		fmt.Sprintf("Perfect defuses %d   Bombs failed %d", sum.PerfectDefuses, sum.BombsFailed),
		fmt.Sprintf("Charges won %d   failed %d", sum.ChargesWon, sum.ChargesFailed),
		fmt.Sprintf("Best combo %d   Accuracy %.0f%%", sum.BestCombo, sum.Accuracy()*100),
	}
}
