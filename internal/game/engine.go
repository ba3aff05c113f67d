// internal/game/engine.go
//
// Core game engine for a single WordScramble session.
// Responsibilities:
//   - Pick a root word at random from the start list (fallback "silkworm").
//   - Validate candidates in a fixed order: originality, feasibility,
//     realness, non-triviality. The first failing check wins.
//   - Score accepted words (1 point bonus + 1 per letter).
//
// The pipeline functions (StartGame, Validate, Submit) are pure: they take a
// State and return a new one. Game wraps a State with a mutex so that one
// session can be driven from concurrent HTTP requests.
package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultRootWord is used when the start list has no usable entry.
	DefaultRootWord = "silkworm"

	// DefaultLanguage is the dictionary language for new games.
	DefaultLanguage = "en"

	// minWordLen is the shortest word that is not "too easy".
	minWordLen = 4
)

// StartGame returns a fresh state with a root word chosen uniformly from list.
// Blank entries are skipped. A nil rng uses the package-level source.
func StartGame(list []string, rng *mrand.Rand) State {
	candidates := make([]string, 0, len(list))
	for _, w := range list {
		if w = strings.TrimSpace(w); w != "" {
			candidates = append(candidates, w)
		}
	}
	root := DefaultRootWord
	if len(candidates) > 0 {
		var i int
		if rng != nil {
			i = rng.Intn(len(candidates))
		} else {
			i = mrand.Intn(len(candidates))
		}
		root = strings.ToLower(candidates[i])
	}
	return State{RootWord: root, UsedWords: []string{}, Score: 0}
}

// Normalize trims surrounding whitespace and lowercases candidate using the
// case rules of lang.
func Normalize(candidate, lang string) string {
	tag := language.Make(lang)
	return cases.Lower(tag).String(strings.TrimSpace(candidate))
}

// Validate runs the pipeline against candidate without touching st.
//
// Order:
//  1. empty → KindIgnored
//  2. already used → KindDuplicate
//  3. not spellable from the root → KindNotSubset
//  4. not in the dictionary → KindNotReal
//  5. too short or equal to the root → KindTooTrivial
func Validate(candidate string, st State, dict Dictionary, lang string) Kind {
	word := Normalize(candidate, lang)
	switch {
	case word == "":
		return KindIgnored
	case !IsOriginal(word, st.UsedWords):
		return KindDuplicate
	case !IsSubsetOfLetters(word, st.RootWord):
		return KindNotSubset
	case dict == nil || !dict.IsValidWord(word, lang):
		return KindNotReal
	case !IsNotTooEasy(word, st.RootWord):
		return KindTooTrivial
	}
	return KindAccepted
}

// Submit validates candidate and, if accepted, returns st with the word
// prepended and the score increased by Award. Any other result returns st
// unchanged.
func Submit(candidate string, st State, dict Dictionary, lang string) (State, Kind) {
	kind := Validate(candidate, st, dict, lang)
	if kind != KindAccepted {
		return st, kind
	}
	word := Normalize(candidate, lang)
	next := State{
		RootWord:  st.RootWord,
		UsedWords: make([]string, 0, len(st.UsedWords)+1),
		Score:     st.Score + Award(word),
	}
	next.UsedWords = append(next.UsedWords, word)
	next.UsedWords = append(next.UsedWords, st.UsedWords...)
	return next, kind
}

// IsOriginal reports whether word is not yet in used.
func IsOriginal(word string, used []string) bool {
	for _, u := range used {
		if u == word {
			return false
		}
	}
	return true
}

// IsSubsetOfLetters reports whether every letter of word occurs in root at
// least as many times as it occurs in word.
func IsSubsetOfLetters(word, root string) bool {
	counts := make(map[rune]int, len(root))
	for _, r := range root {
		counts[r]++
	}
	for _, r := range word {
		if counts[r] == 0 {
			return false
		}
		counts[r]--
	}
	return true
}

// IsNotTooEasy reports whether word is longer than three letters and is not
// the root word itself.
func IsNotTooEasy(word, root string) bool {
	return utf8.RuneCountInString(word) >= minWordLen && word != root
}

// Award returns the points for an accepted word: 1 + its length.
func Award(word string) int {
	return 1 + utf8.RuneCountInString(word)
}

// RejectionFor builds the player-facing message for a rejected kind.
// It returns nil for non-rejection kinds.
func RejectionFor(kind Kind, root string) *Rejection {
	switch kind {
	case KindDuplicate:
		return &Rejection{Kind: kind, Title: "Word used already!", Message: "Be more original."}
	case KindNotSubset:
		return &Rejection{Kind: kind, Title: "Word not possible!", Message: "You can't spell that word from '" + root + "'!"}
	case KindNotReal:
		return &Rejection{Kind: kind, Title: "Word not recognized!", Message: "You can't just make them up, you know!"}
	case KindTooTrivial:
		return &Rejection{Kind: kind, Title: "Word too easy!", Message: "Words should be longer than 3 characters and not the starting word."}
	}
	return nil
}

// New constructs a game with a root word picked from list.
func New(list []string, lang string, rng *mrand.Rand) *Game {
	g := newGame(lang)
	g.state = g.localize(StartGame(list, rng))
	return g
}

// NewWithRoot constructs a game with a fixed root word. An empty root falls
// back to DefaultRootWord.
func NewWithRoot(root, lang string) *Game {
	g := newGame(lang)
	g.state = g.localize(StartGame([]string{root}, nil))
	return g
}

func newGame(lang string) *Game {
	if strings.TrimSpace(lang) == "" {
		lang = DefaultLanguage
	}
	now := time.Now().UTC()
	return &Game{
		ID:         randomID(),
		Language:   lang,
		CreatedAt:  now,
		started:    now,
		lastActive: now,
	}
}

// localize lowercases the root word with the game's case rules so that it
// compares equal to candidates passed through Normalize.
func (g *Game) localize(st State) State {
	st.RootWord = Normalize(st.RootWord, g.Language)
	return st
}

// Submit applies a candidate word to the game.
// Rejections are returned as *Rejection and leave the state untouched.
// An empty candidate is ignored and returns no error.
func (g *Game) Submit(candidate string, dict Dictionary) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastActive = time.Now().UTC()

	next, kind := Submit(candidate, g.state, dict, g.Language)
	if kind.Rejected() {
		return Outcome{Kind: kind, State: g.state.clone()}, RejectionFor(kind, g.state.RootWord)
	}
	out := Outcome{Word: Normalize(candidate, g.Language), Kind: kind, State: next.clone()}
	if kind == KindAccepted {
		out.Points = next.Score - g.state.Score
		g.state = next
	}
	return out, nil
}

// Reset discards the current state and starts over with a new root word
// from list. It returns the discarded state and when that round started.
func (g *Game) Reset(list []string, rng *mrand.Rand) (State, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev, started := g.state.clone(), g.started
	g.state = g.localize(StartGame(list, rng))
	g.started = time.Now().UTC()
	g.lastActive = g.started
	return prev, started
}

// Started returns the start time of the current round.
func (g *Game) Started() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started
}

// LastActive returns when the game was created, last played or last reset.
func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.clone()
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
