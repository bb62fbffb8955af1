package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fairsettle/fairsettle-go/internal/engine"
	"github.com/fairsettle/fairsettle-go/internal/games"
	"github.com/fairsettle/fairsettle-go/internal/session"
	"github.com/fairsettle/fairsettle-go/internal/stats"
	"github.com/fairsettle/fairsettle-go/internal/store"
)

// maxVerifyCount bounds a single verification replay.
const maxVerifyCount = 10000

func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	var req DeriveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	// Derive is total: no input validation needed beyond JSON shape.
	s.metrics.DerivationsTotal.Inc()
	s.metrics.RequestsTotal.WithLabelValues("derive", "2xx").Inc()
	s.writeJSON(w, http.StatusOK, DeriveResponse{
		Value: engine.Derive(req.Seed, req.Context, req.Index),
	})
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	seed, err := engine.NewSeed()
	if err != nil {
		s.metrics.RequestsTotal.WithLabelValues("seed", "5xx").Inc()
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"seed generation failed", map[string]any{"cause": err.Error()})
		return
	}
	s.metrics.RequestsTotal.WithLabelValues("seed", "2xx").Inc()
	s.writeJSON(w, http.StatusOK, SeedResponse{Seed: seed})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	game, ok := games.Get(req.Game)
	if !ok {
		s.metrics.RequestsTotal.WithLabelValues("resolve", "4xx").Inc()
		s.writeError(w, r, http.StatusNotFound, ErrTypeGameNotFound,
			"unknown game", map[string]any{"game": req.Game})
		return
	}

	result, err := game.Resolve(games.Matchup{
		Seed:      req.Seed,
		SessionID: req.SessionID,
		Player1:   req.Player1,
		Player2:   req.Player2,
	}, req.Index)
	if err != nil {
		s.metrics.RequestsTotal.WithLabelValues("resolve", "5xx").Inc()
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"resolution failed", map[string]any{"cause": err.Error()})
		return
	}

	s.metrics.ResolvesTotal.WithLabelValues(req.Game).Inc()
	s.metrics.RequestsTotal.WithLabelValues("resolve", "2xx").Inc()
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Count < 1 || req.Count > maxVerifyCount {
		s.metrics.RequestsTotal.WithLabelValues("verify", "4xx").Inc()
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation,
			"count must be between 1 and "+strconv.Itoa(maxVerifyCount),
			map[string]any{"count": req.Count})
		return
	}

	game, ok := games.Get(req.Game)
	if !ok {
		s.metrics.RequestsTotal.WithLabelValues("verify", "4xx").Inc()
		s.writeError(w, r, http.StatusNotFound, ErrTypeGameNotFound,
			"unknown game", map[string]any{"game": req.Game})
		return
	}

	m := games.Matchup{
		Seed:      req.Seed,
		SessionID: req.SessionID,
		Player1:   req.Player1,
		Player2:   req.Player2,
	}

	results := make([]games.GameResult, 0, req.Count)
	tally := make(map[string]int)
	values := make([]float64, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		index := req.Start + uint64(i)
		res, err := game.Resolve(m, index)
		if err != nil {
			s.metrics.RequestsTotal.WithLabelValues("verify", "5xx").Inc()
			s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
				"resolution failed", map[string]any{"index": index, "cause": err.Error()})
			return
		}
		results = append(results, res)
		tally[res.Winner]++
		values = append(values, engine.Derive(req.Seed, "verify-"+req.SessionID, int(index)))
	}

	s.metrics.RequestsTotal.WithLabelValues("verify", "2xx").Inc()
	s.writeJSON(w, http.StatusOK, VerifyResponse{
		Results:  results,
		Tally:    tally,
		Fairness: stats.Summarize(values),
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	s.metrics.RequestsTotal.WithLabelValues("games", "2xx").Inc()
	s.writeJSON(w, http.StatusOK, games.List())
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	sess, err := session.New(req.Game, req.Player1, req.Player2, req.Target)
	if err != nil {
		s.metrics.RequestsTotal.WithLabelValues("sessions", "4xx").Inc()
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation,
			"cannot create session", map[string]any{"cause": err.Error()})
		return
	}

	runner := session.NewRunner(sess, s.tickInterval, s.batchSize)
	runner.OnComplete = func(final session.Session) {
		s.metrics.SessionsSettled.Inc()
		s.persistSession(final)
	}

	s.mu.Lock()
	s.runners[sess.ID] = runner
	s.mu.Unlock()

	runner.Start()
	s.metrics.SessionsStarted.Inc()
	s.metrics.RequestsTotal.WithLabelValues("sessions", "2xx").Inc()
	s.writeJSON(w, http.StatusCreated, snapshotResponse(runner.Session()))
}

func (s *Server) lookupRunner(w http.ResponseWriter, r *http.Request) *session.Runner {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	runner, ok := s.runners[id]
	s.mu.RUnlock()
	if !ok {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound,
			"session not found", map[string]any{"id": id})
		return nil
	}
	return runner
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	runner := s.lookupRunner(w, r)
	if runner == nil {
		return
	}
	s.writeJSON(w, http.StatusOK, snapshotResponse(runner.Session()))
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	runner := s.lookupRunner(w, r)
	if runner == nil {
		return
	}
	runner.Pause()
	s.writeJSON(w, http.StatusOK, snapshotResponse(runner.Session()))
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	runner := s.lookupRunner(w, r)
	if runner == nil {
		return
	}
	runner.Start()
	s.writeJSON(w, http.StatusOK, snapshotResponse(runner.Session()))
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	runner := s.lookupRunner(w, r)
	if runner == nil {
		return
	}

	old := runner.Session().ID
	fresh, err := runner.Reset()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"reset failed", map[string]any{"cause": err.Error()})
		return
	}

	// Re-key the runner under the fresh session id.
	s.mu.Lock()
	delete(s.runners, old)
	s.runners[fresh.ID] = runner
	s.mu.Unlock()

	runner.Start()
	s.writeJSON(w, http.StatusOK, snapshotResponse(runner.Session()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "history disabled", nil)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	list, err := s.db.ListSessions(store.SessionsQuery{
		Game:    r.URL.Query().Get("game"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"history query failed", map[string]any{"cause": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleHistoryResults(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "history disabled", nil)
		return
	}

	id := chi.URLParam(r, "id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	results, err := s.db.GetResults(id, limit, offset)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"results query failed", map[string]any{"cause": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

// persistSession records a settled session to the history store.
func (s *Server) persistSession(final session.Session) {
	if s.db == nil {
		return
	}

	tally := final.Tally()
	rec := &store.SessionRecord{
		ID:        final.ID,
		Game:      final.GameID,
		Seed:      final.Seed,
		Player1:   final.Player1,
		Player2:   final.Player2,
		Target:    final.Target,
		Completed: final.Completed,
		Winner:    final.Winner,
		Wins1:     tally[final.Player1],
		Wins2:     tally[final.Player2],
		Ties:      tally[games.TieWinner],
		CreatedAt: final.CreatedAt,
	}

	results := make([]store.ResultRecord, 0, len(final.Results))
	for _, res := range final.Results {
		details := ""
		if res.Details != nil {
			if b, err := json.Marshal(res.Details); err == nil {
				details = string(b)
			}
		}
		results = append(results, store.ResultRecord{
			GameIndex: res.Index,
			Winner:    res.Winner,
			Details:   details,
		})
	}

	if err := s.db.SaveSession(rec, results); err != nil {
		s.logger.Printf("persist session %s: %v", final.ID, err)
	}
}

func snapshotResponse(sess session.Session) SessionResponse {
	return SessionResponse{
		ID:        sess.ID,
		Seed:      sess.Seed,
		Game:      sess.GameID,
		Player1:   sess.Player1,
		Player2:   sess.Player2,
		Target:    sess.Target,
		Completed: sess.Completed,
		Progress:  sess.Progress(),
		State:     string(sess.State),
		Winner:    sess.Winner,
		Tally:     sess.Tally(),
	}
}
