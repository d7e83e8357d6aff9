package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/leaderboard"
	"github.com/tomz197/snake/internal/store"
)

const (
	defaultHost   = "0.0.0.0"
	defaultPort   = "8080"
	defaultDBPath = "/app/data/leaderboard.db"
)

//go:embed index.html
var htmlPage string

func main() {
	config.Load()
	config.InitLogging(os.Stdout)

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	if api, closeAPI, err := leaderboardAPI(); err != nil {
		log.Warn().Err(err).Msg("leaderboard API disabled")
	} else {
		defer closeAPI()
		r.Mount("/api", api)
	}

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting web server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// leaderboardAPI builds the score service from LEADERBOARD_SECRET and
// SNAKE_DB. Scores are kept in memory when the database cannot be opened.
func leaderboardAPI() (http.Handler, func(), error) {
	verifier, err := leaderboard.NewVerifier([]byte(config.GetEnv("LEADERBOARD_SECRET", "")), config.GameSettings())
	if err != nil {
		return nil, nil, err
	}

	var scores store.ScoreStore
	closeDB := func() {}
	path := config.GetEnv("SNAKE_DB", defaultDBPath)
	if db, err := store.Open(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("leaderboard will not persist")
		scores = store.NewMemoryScores()
	} else {
		scores = store.NewScores(db)
		closeDB = func() { _ = db.Close() }
	}

	return leaderboard.NewServer(scores, verifier, log.Logger).Router(), closeDB, nil
}
