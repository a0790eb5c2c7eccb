// Package words supplies vocabulary entries to challenges.
package words

import (
	"errors"
	"math/rand/v2"

	"github.com/milk9111/wordtitan/wordmatch"
)

var ErrEmptyLibrary = errors.New("words: library has no usable entries")

// Word is one vocabulary entry.
type Word struct {
	ID      string `yaml:"id"`
	Text    string `yaml:"text"`
	Meaning string `yaml:"meaning"`
}

// Normalized returns the letters-only form used for matching.
func (w *Word) Normalized() string {
	if w == nil {
		return ""
	}
	return wordmatch.Letters(w.Text)
}

// Source hands out random words. RandomWord returns nil when nothing is
// available.
type Source interface {
	RandomWord() *Word
}

// Library is an in-memory Source.
type Library struct {
	words []Word
	index map[string]int
	rng   *rand.Rand
}

// NewLibrary keeps the entries whose text normalizes to something non-empty.
// A nil rng uses the package-level generator.
func NewLibrary(entries []Word, rng *rand.Rand) *Library {
	l := &Library{index: make(map[string]int), rng: rng}
	for _, w := range entries {
		key := w.Normalized()
		if key == "" {
			continue
		}
		if _, dup := l.index[key]; dup {
			continue
		}
		l.index[key] = len(l.words)
		l.words = append(l.words, w)
	}
	return l
}

// RandomWord returns a copy of a random entry, or nil when the library is
// empty.
func (l *Library) RandomWord() *Word {
	if l == nil || len(l.words) == 0 {
		return nil
	}
	var i int
	if l.rng != nil {
		i = l.rng.IntN(len(l.words))
	} else {
		i = rand.IntN(len(l.words))
	}
	w := l.words[i]
	return &w
}

// Lookup finds an entry by asset-style key ("03_apple" finds "Apple").
func (l *Library) Lookup(name string) (*Word, bool) {
	if l == nil {
		return nil, false
	}
	i, ok := l.index[wordmatch.Key(name)]
	if !ok {
		return nil, false
	}
	w := l.words[i]
	return &w, true
}

func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// Validate returns ErrEmptyLibrary when the library cannot supply words.
func (l *Library) Validate() error {
	if l.Len() == 0 {
		return ErrEmptyLibrary
	}
	return nil
}
