package game

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"
)

// keyboard reads typed text from ebiten for the typing system. Ctrl+V (or
// Cmd+V) pastes from the system clipboard when one is available.
type keyboard struct {
	log    zerolog.Logger
	once   sync.Once
	clipOK bool
}

func newKeyboard(log zerolog.Logger) *keyboard {
	return &keyboard{log: log.With().Str("component", "keyboard").Logger()}
}

func (k *keyboard) AppendChars(dst []rune) []rune {
	if modifierHeld() {
		return dst
	}
	return ebiten.AppendInputChars(dst)
}

func (k *keyboard) Backspace() bool {
	return repeating(ebiten.KeyBackspace)
}

func (k *keyboard) Submit() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
}

func (k *keyboard) Paste() string {
	if !modifierHeld() || !inpututil.IsKeyJustPressed(ebiten.KeyV) {
		return ""
	}
	k.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			k.log.Warn().Err(err).Msg("clipboard unavailable, paste disabled")
			return
		}
		k.clipOK = true
	})
	if !k.clipOK {
		return ""
	}
	return string(clipboard.Read(clipboard.FmtText))
}

func modifierHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// repeating is true on the press frame and then every few frames while held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	const delay, interval = 30, 4
	return d == 1 || (d >= delay && (d-delay)%interval == 0)
}
