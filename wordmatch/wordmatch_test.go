package wordmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetters(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "apple", "apple"},
		{"mixed_case", "ApPlE", "apple"},
		{"punctuation_and_space", " ap-ple! ", "apple"},
		{"digits_dropped", "r2d2", "rd"},
		{"accents_folded", "Café", "cafe"},
		{"non_latin_dropped", "日本", ""},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Letters(c.in))
		})
	}
}

func TestSpeech(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Hello World", "hello world"},
		{"separators", "ice_cream-cone", "ice cream cone"},
		{"punctuation", "it's, fine!", "its fine"},
		{"collapse", "  a \t\n b  ", "a b"},
		{"digits_kept", "Room 101", "room 101"},
		{"only_punctuation", "?!", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Speech(c.in))
		})
	}
}

func TestEqualRejectsEmpty(t *testing.T) {
	assert.True(t, Equal("cat", "cat"))
	assert.False(t, Equal("cat", "cats"))
	assert.False(t, Equal("", ""))
	assert.False(t, Equal("", "cat"))
	assert.False(t, Equal(Letters("!!"), Letters("??")))
}

func TestCandidatesOrder(t *testing.T) {
	assert.Equal(t, []string{"ice", "cream", "icecream"}, Candidates("Ice cream!"))
	assert.Equal(t, []string{"apple"}, Candidates("apple"))
	assert.Nil(t, Candidates("   "))
}

func TestMatchSpeech(t *testing.T) {
	cases := []struct {
		utterance string
		target    string
		want      bool
	}{
		{"um apple please", "apple", true},
		{"ice cream", "icecream", true},
		{"Ice-Cream", "ice cream", true},
		{"banana", "apple", false},
		{"", "apple", false},
		{"apple", "", false},
	}
	for _, c := range cases {
		t.Run(c.utterance+"/"+c.target, func(t *testing.T) {
			assert.Equal(t, c.want, MatchSpeech(c.utterance, c.target))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "apple", Key("03_big_Apple"))
	assert.Equal(t, "cat", Key("cat"))
	assert.Equal(t, "", Key("123"))
}
