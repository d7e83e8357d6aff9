package leaderboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tomz197/snake/internal/store"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	maxBodyBytes = 4 << 10
)

// Server exposes the leaderboard over HTTP.
type Server struct {
	r        *chi.Mux
	scores   store.ScoreStore
	verifier *Verifier
	log      zerolog.Logger
}

// NewServer installs middleware and registers routes.
func NewServer(scores store.ScoreStore, verifier *Verifier, logger zerolog.Logger) *Server {
	s := &Server{r: chi.NewRouter(), scores: scores, verifier: verifier, log: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/scores", s.handleTop)
	s.r.Post("/scores", s.handleSubmit)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the internal router (mounted by cmd/web, used by tests).
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

type topRes struct {
	Scores []store.Entry `json:"scores"`
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxLimit)
	}

	top, err := s.scores.TopScores(r.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Msg("top scores")
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(topRes{Scores: top})
}

type submitReq struct {
	Receipt string `json:"receipt"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Receipt == "" {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	entry, err := s.verifier.Verify(req.Receipt)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("receipt rejected")
		writeError(w, http.StatusUnprocessableEntity, "invalid_receipt")
		return
	}

	err = s.scores.InsertScore(r.Context(), entry)
	if errors.Is(err, store.ErrDuplicate) {
		s.log.Warn().Str("id", entry.ID).Str("player", entry.Player).Msg("receipt replayed")
		writeError(w, http.StatusConflict, "duplicate_receipt")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("insert score")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	s.log.Info().Str("player", entry.Player).Int("score", entry.Score).Msg("score recorded")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(entry)
}
