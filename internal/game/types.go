// internal/game/types.go
//
// Core type definitions for the WordScramble game engine.
// Defines:
//   - Kind: outcome of a single word submission.
//   - State: root word, accepted words and running score.
//   - Rejection: the user-facing (title, message) pair for a rejected word.
//   - Dictionary: the spell-check capability the pipeline delegates to.
//   - Game: a single player's session wrapping State.

package game

import (
	"fmt"
	"sync"
	"time"
)

// Kind is the result of validating one candidate word.
type Kind string

const (
	KindAccepted   Kind = "accepted"
	KindDuplicate  Kind = "duplicate"
	KindNotSubset  Kind = "not_possible"
	KindNotReal    Kind = "not_real"
	KindTooTrivial Kind = "too_easy"

	// KindIgnored marks an empty candidate. It is a silent no-op, not an error.
	KindIgnored Kind = "ignored"
)

// Rejected reports whether k is one of the rejection kinds.
func (k Kind) Rejected() bool {
	switch k {
	case KindDuplicate, KindNotSubset, KindNotReal, KindTooTrivial:
		return true
	}
	return false
}

// State is the full, explicit game state. Values are passed into and returned
// from the pure pipeline functions; nothing here is shared between games.
type State struct {
	RootWord  string   // The word every candidate must be spelled from.
	UsedWords []string // Accepted words, most recent first, no duplicates.
	Score     int      // Sum of Award over UsedWords.
}

// clone returns a copy of s that shares no backing array with it.
func (s State) clone() State {
	used := make([]string, len(s.UsedWords))
	copy(used, s.UsedWords)
	return State{RootWord: s.RootWord, UsedWords: used, Score: s.Score}
}

// Dictionary decides whether a word is real in a given language.
// Implementations must be safe for concurrent use.
type Dictionary interface {
	IsValidWord(word, language string) bool
}

// DictionaryFunc adapts a plain function to the Dictionary interface.
type DictionaryFunc func(word, language string) bool

// IsValidWord calls f(word, language).
func (f DictionaryFunc) IsValidWord(word, language string) bool { return f(word, language) }

// Rejection is returned for every rejected submission. Title and Message are
// meant to be shown to the player as-is.
type Rejection struct {
	Kind    Kind
	Title   string
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Title, r.Message)
}

// Outcome describes an applied (or ignored) submission.
type Outcome struct {
	Word   string // Normalized candidate.
	Kind   Kind   // KindAccepted or KindIgnored.
	Points int    // Points awarded; zero unless accepted.
	State  State  // Snapshot after the submission.
}

// Game holds the state for a single player session.
type Game struct {
	mu        sync.Mutex
	ID        string    // Unique game identifier (random hex string).
	Language  string    // Dictionary language, e.g. "en".
	Daily     string    // Daily challenge date key; empty for free play.
	OwnerID   string    // User or anonymous id of the player.
	Guest     bool      // OwnerID is an anonymous id.
	CreatedAt time.Time // Time the session was created.
	started   time.Time // Start of the current round.
	state     State

	lastActive time.Time // Last submission or reset; used to expire idle sessions.
}
