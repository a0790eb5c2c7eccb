// Package wordmatch canonicalizes typed and spoken text for word comparisons.
//
// Two forms exist. Letters keeps only a-z and is used for word-against-word
// equality (bombs, boss, enemies). Speech keeps spacing and digits and is used
// for free-form recognized utterances that may hold several words.
package wordmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Letters lowercases raw and drops everything outside a-z. Accented letters
// are folded to their base letter first so "Café" matches "cafe".
func Letters(raw string) string {
	if raw == "" {
		return ""
	}
	folded := foldMarks(raw)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Speech lowercases raw, turns underscores and hyphens into spaces, removes
// remaining punctuation and collapses whitespace runs to a single space.
func Speech(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	s := lower.String(foldMarks(raw))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokens splits a Speech-normalized string on spaces.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// Equal reports whether two normalized strings match. Empty strings never
// match anything, including each other.
func Equal(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b
}

// Candidates returns the letters-only forms worth trying for a spoken
// utterance, in order: each token, the whole utterance, then the utterance
// with spaces removed. Duplicates and empties are dropped.
func Candidates(utterance string) []string {
	speech := Speech(utterance)
	if speech == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		s = Letters(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, tok := range Tokens(speech) {
		add(tok)
	}
	add(speech)
	add(strings.ReplaceAll(speech, " ", ""))
	return out
}

// MatchSpeech reports whether a spoken utterance names target. It tries the
// same candidate order as Candidates.
func MatchSpeech(utterance, target string) bool {
	want := Letters(target)
	if want == "" {
		return false
	}
	for _, c := range Candidates(utterance) {
		if Equal(c, want) {
			return true
		}
	}
	return false
}

// Key turns an asset or clip name into a lookup key: leading digits and
// separators are stripped, the last remaining token is kept, letters only.
// "03_big_Apple" becomes "apple".
func Key(name string) string {
	s := strings.TrimLeftFunc(name, func(r rune) bool {
		return unicode.IsDigit(r) || r == '_' || r == '-' || unicode.IsSpace(r)
	})
	toks := Tokens(Speech(s))
	if len(toks) == 0 {
		return ""
	}
	return Letters(toks[len(toks)-1])
}

func foldMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
