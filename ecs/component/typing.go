package component

// TypingBuffer is the line the player is composing. Verdict is the label of
// the last submission and Shake counts down the rejected-input wobble.
type TypingBuffer struct {
	Text    []rune
	Verdict string
	Shake   int
}

var TypingBufferComponent = NewComponent[TypingBuffer]()
