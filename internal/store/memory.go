// internal/store/memory.go
//
// In-memory implementation of the game session Store.
//
// Characteristics:
//   - Stores *game.Game sessions keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; games are never resumed.
//   - Idle games are dropped by Sweep, which the server runs periodically.
//   - Each game owns its own state; nothing is shared between sessions.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
)

// ErrNotFound is returned by Get for unknown game IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game session.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete drops a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are held.
	Len() int

	// Sweep drops games whose last activity is before idleBefore and
	// returns how many were removed.
	Sweep(ctx context.Context, idleBefore time.Time) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	if g == nil || g.ID == "" {
		return errors.New("store: game without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (m *memory) Sweep(ctx context.Context, idleBefore time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		if g.LastActive().Before(idleBefore) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
