package words

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyLibraryReturnsNil(t *testing.T) {
	var nilLib *Library
	assert.Nil(t, nilLib.RandomWord())

	lib := NewLibrary([]Word{{ID: "x", Text: "!!!"}}, nil)
	assert.Nil(t, lib.RandomWord())
	assert.ErrorIs(t, lib.Validate(), ErrEmptyLibrary)
}

func TestLibraryDedupesAndDraws(t *testing.T) {
	lib := NewLibrary([]Word{
		{ID: "1", Text: "Apple", Meaning: "fruit"},
		{ID: "2", Text: "apple!", Meaning: "dup"},
		{ID: "3", Text: "Pear"},
	}, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, lib.Validate())
	assert.Equal(t, 2, lib.Len())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		w := lib.RandomWord()
		require.NotNil(t, w)
		seen[w.Normalized()] = true
	}
	assert.Equal(t, map[string]bool{"apple": true, "pear": true}, seen)
}

func TestRandomWordReturnsCopy(t *testing.T) {
	lib := NewLibrary([]Word{{ID: "1", Text: "cat"}}, nil)
	w := lib.RandomWord()
	w.Text = "dog"
	assert.Equal(t, "cat", lib.RandomWord().Text)
}

func TestLookupByKey(t *testing.T) {
	lib := NewLibrary([]Word{{ID: "1", Text: "Apple", Meaning: "fruit"}}, nil)
	w, ok := lib.Lookup("03_big_apple")
	require.True(t, ok)
	assert.Equal(t, "fruit", w.Meaning)

	_, ok = lib.Lookup("banana")
	assert.False(t, ok)
}
