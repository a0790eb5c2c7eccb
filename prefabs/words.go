package prefabs

import (
	"fmt"

	"github.com/milk9111/wordtitan/words"
)

// WordListSpec is words.yaml.
type WordListSpec struct {
	Words []words.Word `yaml:"words"`
}

func LoadWordList(filename string) ([]words.Word, error) {
	if filename == "" {
		filename = "words.yaml"
	}
	spec, err := LoadSpec[WordListSpec](filename)
	if err != nil {
		return nil, err
	}
	if len(spec.Words) == 0 {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, words.ErrEmptyLibrary)
	}
	return spec.Words, nil
}
