package words

import (
	"strings"

	"golang.org/x/text/language"
)

// Set is an in-memory dictionary for a single language. It satisfies
// game.Dictionary.
type Set struct {
	lang  language.Base
	words map[string]struct{}
}

// NewSet builds a dictionary for lang (default "en") from words.
// Words are trimmed and lowercased.
func NewSet(lang string, words []string) *Set {
	if strings.TrimSpace(lang) == "" {
		lang = "en"
	}
	base, _ := language.Make(lang).Base()
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			m[w] = struct{}{}
		}
	}
	return &Set{lang: base, words: m}
}

// IsValidWord reports whether word is in the set and lang names the set's
// language. Regional variants ("en-GB") match their base language.
func (s *Set) IsValidWord(word, lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	if base, _ := tag.Base(); base != s.lang {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s *Set) Len() int { return len(s.words) }
