// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses the session)
//   - POST /daily/finish      → submit today's score; the game is closed afterwards
//   - GET  /daily/leaderboard → top 20 results for today (or a given date)
//
// Everyone gets the same root word on a given date (see daily.RootWord).
// Each player can finish once per day (enforced by DB + in-memory session).

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	sessions map[string]string // game IDs keyed by playerID|date
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    s.daily,
		sessions: make(map[string]string),
	}
	s.dailies = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/finish", dd.handleFinish)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key and root word.
func (d *dailyServer) today() (date, root string) {
	now := d.srv.now()
	return daily.DateKey(now), daily.RootWord(now, d.srv.cfg.DailySalt, d.srv.words.Start)
}

// prune forgets sessions for past dates and for games the store no longer holds.
func (d *dailyServer) prune(ctx context.Context) {
	today := daily.DateKey(d.srv.now())
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, id := range d.sessions {
		if !strings.HasSuffix(key, "|"+today) {
			delete(d.sessions, key)
			continue
		}
		if _, err := d.srv.store.Get(ctx, id); err != nil {
			delete(d.sessions, key)
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Game   *gameView `json:"game,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a DB row for today → Played=true.
//   - Otherwise create/reuse an in-memory game and return it.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, guest := d.srv.playerID(w, r)
	date, root := d.today()

	played, err := d.store.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.sessions[key]; ok {
		if g, err := d.srv.store.Get(r.Context(), id); err == nil {
			v := viewOf(g, g.Snapshot())
			writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &v})
			return
		}
		delete(d.sessions, key)
	}

	g := game.NewWithRoot(root, d.srv.cfg.Language)
	g.Daily = date
	g.OwnerID, g.Guest = uid, guest
	if err := d.srv.store.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save daily game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = g.ID
	v := viewOf(g, g.Snapshot())
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &v})
}

// -----------------------------------------------------------------------------
// /daily/finish

// dailyFinishReq is the request payload for /daily/finish.
type dailyFinishReq struct {
	GameID string `json:"gameId"`
}

// dailyFinishRes is the response payload for /daily/finish.
type dailyFinishRes struct {
	Date     string `json:"date"`
	Score    int    `json:"score"`
	Words    int    `json:"words"`
	Recorded bool   `json:"recorded"` // false if a result already existed
}

// handleFinish records the player's daily result and closes the game.
func (d *dailyServer) handleFinish(w http.ResponseWriter, r *http.Request) {
	var p dailyFinishReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, ok := d.srv.loadGame(w, r, p.GameID)
	if !ok {
		return
	}
	if g.Daily == "" {
		writeError(w, http.StatusBadRequest, "not_daily")
		return
	}

	// A guest who signed in mid-game finishes under the account.
	uid := g.OwnerID
	if me := userFrom(r.Context()); me != nil {
		uid = me.ID
	}
	st := g.Snapshot()
	recorded, err := d.store.InsertResult(r.Context(), daily.Result{
		UserID:   uid,
		Date:     g.Daily,
		RootWord: st.RootWord,
		Score:    st.Score,
		Words:    len(st.UsedWords),
	})
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("insert daily result")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if recorded {
		d.srv.recordRound(r, g, st, g.Started())
	}

	_ = d.srv.store.Delete(r.Context(), g.ID)
	d.mu.Lock()
	delete(d.sessions, g.OwnerID+"|"+g.Daily)
	d.mu.Unlock()

	writeJSON(w, http.StatusOK, dailyFinishRes{Date: g.Daily, Score: st.Score, Words: len(st.UsedWords), Recorded: recorded})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date, _ := d.today()
	if q := r.URL.Query().Get("date"); q != "" {
		var err error
		if date, err = daily.ParseDate(q); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date")
			return
		}
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
