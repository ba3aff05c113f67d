// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load the start (root word) list and the dictionary from environment-provided
//     files or fall back to the embedded defaults in the assets package.
//   - Expose the dictionary as a game.Dictionary (see set.go).
//   - Report list sizes for diagnostics.
//
// Initialization behavior (Init):
//   - WORDS_START_FILE, if set, replaces the embedded start.txt.
//   - WORDS_DICTIONARY_FILE, if set, replaces the embedded dictionary.txt.
//   - An empty or unreadable start list is an error: no game can begin without
//     a root word, so callers should abort startup.
//   - Initialization is run once (sync.Once).

package words

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/robalobadob/wordscramble/assets"
)

// ErrEmptyStartList is returned when the start list has no words.
var ErrEmptyStartList = errors.New("words: start list is empty")

// Lists is a loaded pair of word lists.
type Lists struct {
	Start      []string
	Dictionary *Set
}

var (
	initOnce   sync.Once
	loaded     *Lists
	initialErr error
)

// Init loads word lists exactly once from the environment or embedded defaults.
func Init(language string) error {
	initOnce.Do(func() {
		loaded, initialErr = Load(os.Getenv("WORDS_START_FILE"), os.Getenv("WORDS_DICTIONARY_FILE"), language)
	})
	return initialErr
}

// Load reads the start list and dictionary. An empty path selects the
// embedded default for that list.
func Load(startPath, dictPath, language string) (*Lists, error) {
	var (
		start, dict []string
		err         error
	)
	if startPath != "" {
		start, err = readWordFile(startPath)
	} else {
		start, err = assets.StartList()
	}
	if err != nil {
		return nil, fmt.Errorf("load start list: %w", err)
	}
	if len(start) == 0 {
		return nil, ErrEmptyStartList
	}

	if dictPath != "" {
		dict, err = readWordFile(dictPath)
	} else {
		dict, err = assets.DictionaryList()
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return &Lists{Start: start, Dictionary: NewSet(language, dict)}, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// StartWords returns the loaded root word list, or nil before Init.
func StartWords() []string {
	if loaded == nil {
		return nil
	}
	return loaded.Start
}

// Dictionary returns the loaded dictionary. Before Init it returns an empty
// set that rejects every word.
func Dictionary() *Set {
	if loaded == nil {
		return NewSet("", nil)
	}
	return loaded.Dictionary
}

// Stats returns counts of loaded words: (start, dictionary).
func Stats() (startCount int, dictionaryCount int) {
	if loaded == nil {
		return 0, 0
	}
	return len(loaded.Start), loaded.Dictionary.Len()
}
