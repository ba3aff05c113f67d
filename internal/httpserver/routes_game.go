// internal/httpserver/routes_game.go
//
// Free-play game endpoints:
//   - POST /game/new    → start a game (random root word, or a fixed one for practice)
//   - GET  /game/{id}   → current root word, accepted words with lengths, score
//   - POST /game/word   → submit a candidate word
//   - POST /game/reset  → log the finished round and start over with a new root word
//
// Rejected words answer 422 with the (title, message) pair meant for the
// player's error dialog. Empty words are ignored and answer 200.
// Only rounds on start-list roots are recorded.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/history"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/word", s.handleWord)
	r.Post("/game/reset", s.handleReset)
	r.Get("/game/{id}", s.handleGetGame)
}

// wordView is one accepted word as shown in the list.
type wordView struct {
	Word   string `json:"word"`
	Length int    `json:"length"`
}

// gameView is the JSON shape of a game.
type gameView struct {
	GameID    string     `json:"gameId"`
	RootWord  string     `json:"rootWord"`
	Language  string     `json:"language"`
	Daily     string     `json:"daily,omitempty"`
	UsedWords []wordView `json:"usedWords"`
	Score     int        `json:"score"`
}

func viewOf(g *game.Game, st game.State) gameView {
	used := make([]wordView, 0, len(st.UsedWords))
	for _, w := range st.UsedWords {
		used = append(used, wordView{Word: w, Length: len([]rune(w))})
	}
	return gameView{
		GameID:    g.ID,
		RootWord:  st.RootWord,
		Language:  g.Language,
		Daily:     g.Daily,
		UsedWords: used,
		Score:     st.Score,
	}
}

// newGameReq is the payload for POST /game/new. Both fields are optional.
type newGameReq struct {
	Language string `json:"language"`
	Root     string `json:"root"` // fixed root word; outside production any word, else only start-list words
}

// handleNewGame creates a new in-memory game owned by the caller.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		lang = s.cfg.Language
	}
	if _, err := language.Parse(lang); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_language")
		return
	}

	var g *game.Game
	if root := strings.TrimSpace(req.Root); root != "" {
		if s.cfg.Production() && !s.listRoot(root) {
			writeError(w, http.StatusBadRequest, "invalid_root")
			return
		}
		g = game.NewWithRoot(root, lang)
	} else {
		g = game.New(s.words.Start, lang, nil)
	}
	g.OwnerID, g.Guest = s.playerID(w, r)

	if err := s.store.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	st := g.Snapshot()
	hlog.FromRequest(r).Debug().Str("gameId", g.ID).Str("root", st.RootWord).Msg("new game")
	writeJSON(w, http.StatusOK, viewOf(g, st))
}

// handleGetGame returns the current state of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(g, g.Snapshot()))
}

// wordReq is the payload for POST /game/word.
type wordReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// wordRes answers an accepted or ignored word.
type wordRes struct {
	Result game.Kind `json:"result"`
	Word   string    `json:"word,omitempty"`
	Points int       `json:"points"`
	Game   gameView  `json:"game"`
}

// rejectionRes answers a rejected word.
type rejectionRes struct {
	Result  game.Kind `json:"result"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Game    gameView  `json:"game"`
}

// handleWord runs the validation pipeline on a candidate word.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, ok := s.loadGame(w, r, req.GameID)
	if !ok {
		return
	}

	out, err := g.Submit(req.Word, s.words.Dictionary)
	var rej *game.Rejection
	switch {
	case errors.As(err, &rej):
		hlog.FromRequest(r).Debug().Str("gameId", g.ID).Str("kind", string(rej.Kind)).Msg("word rejected")
		writeJSON(w, http.StatusUnprocessableEntity, rejectionRes{
			Result:  rej.Kind,
			Title:   rej.Title,
			Message: rej.Message,
			Game:    viewOf(g, out.State),
		})
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Str("gameId", g.ID).Msg("submit word")
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}
	writeJSON(w, http.StatusOK, wordRes{Result: out.Kind, Word: out.Word, Points: out.Points, Game: viewOf(g, out.State)})
}

// resetReq is the payload for POST /game/reset.
type resetReq struct {
	GameID string `json:"gameId"`
}

// handleReset logs the finished round and starts a new one on the same game.
// Daily games cannot be reset; they are finished through /daily/finish.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, ok := s.loadGame(w, r, req.GameID)
	if !ok {
		return
	}
	if g.Daily != "" {
		writeError(w, http.StatusConflict, "daily_game")
		return
	}
	prev, started := g.Reset(s.words.Start, nil)
	s.recordRound(r, g, prev, started)
	writeJSON(w, http.StatusOK, viewOf(g, g.Snapshot()))
}

// loadGame fetches a game the caller owns. It writes a 404 and returns false
// for unknown games and for games owned by someone else.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request, id string) (*game.Game, bool) {
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing_game_id")
		return nil, false
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil || !s.owns(r, g) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return g, true
}

// listRoot reports whether root is one of the start-list words.
func (s *Server) listRoot(root string) bool {
	_, ok := s.roots[strings.ToLower(strings.TrimSpace(root))]
	return ok
}

// recordRound stores a finished round (best effort, non-fatal if it fails).
// Rounds on a root outside the start list are practice and never count
// toward history or stats.
func (s *Server) recordRound(r *http.Request, g *game.Game, st game.State, started time.Time) {
	if !s.listRoot(st.RootWord) {
		hlog.FromRequest(r).Debug().Str("gameId", g.ID).Str("root", st.RootWord).Msg("custom root, round not recorded")
		return
	}
	round := history.Round{
		GameID:     g.ID,
		RootWord:   st.RootWord,
		Language:   g.Language,
		Score:      st.Score,
		Words:      len(st.UsedWords),
		StartedAt:  started,
		FinishedAt: s.now().UTC(),
	}
	if me := userFrom(r.Context()); me != nil {
		round.UserID = me.ID
	} else if g.Guest {
		round.AnonymousID = g.OwnerID
	} else {
		round.UserID = g.OwnerID
	}
	// The request context may already be cancelled by the time the client
	// goes away; the round should still be written.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
	defer cancel()
	if _, err := s.history.Record(ctx, round); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", g.ID).Msg("record round")
	}
}
