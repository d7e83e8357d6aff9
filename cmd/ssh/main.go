package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/rs/zerolog/log"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/leaderboard"
	"github.com/tomz197/snake/internal/loop/client"
	"github.com/tomz197/snake/internal/loop/server"
	"github.com/tomz197/snake/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDBPath      = "/app/data/snake.db"
)

// Shared by all SSH sessions
var (
	sessionServer *server.Server
	settings      game.Settings
	highScores    func(player string) game.HighScoreStore
	players       store.PlayerKeys
	reporter      *leaderboard.Reporter
)

func main() {
	config.Load()
	config.InitLogging(os.Stdout)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	log.Info().Str("host", host).Str("port", port).Str("host_key", hostKeyPath).Msg("ssh config")

	settings = config.GameSettings()
	if err := settings.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid game settings")
	}

	db := openStore()
	if db != nil {
		defer db.Close()
	}
	reporter = newReporter()

	// Start the shared session server
	ctx, cancelServer := context.WithCancel(context.Background())
	sessionServer = server.NewServer(log.Logger)
	go sessionServer.Run(ctx)
	log.Info().Msg("session server started")

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		// Player names are bound to ssh keys, so scores follow the key
		wish.WithPublicKeyAuth(keyAuth{players: players}.handler),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Msgf("starting SSH server on %s", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-done
	log.Info().Msg("shutting down server...")

	// Notify players and wait for them to disconnect
	sessionServer.Shutdown(15 * time.Second)
	cancelServer()
	log.Info().Msg("session server stopped")

	if reporter != nil {
		reporter.Wait()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// openStore opens the sqlite database and sets highScores and players.
// Without a database, both live in memory until the process exits.
func openStore() *sql.DB {
	path := config.GetEnv("SNAKE_DB", defaultDBPath)
	db, err := store.Open(path)
	if err == nil {
		highScores = func(player string) game.HighScoreStore {
			return store.NewHighScores(db, player)
		}
		players = store.NewPlayers(db)
		return db
	}

	log.Warn().Err(err).Str("path", path).Msg("high scores will not persist")
	players = store.NewMemoryPlayers()
	var mu sync.Mutex
	mem := make(map[string]*store.MemoryHighScores)
	highScores = func(player string) game.HighScoreStore {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := mem[player]; !ok {
			mem[player] = store.NewMemoryHighScores()
		}
		return mem[player]
	}
	return nil
}

// newReporter returns a leaderboard reporter when LEADERBOARD_URL and
// LEADERBOARD_SECRET are both set.
func newReporter() *leaderboard.Reporter {
	url := config.GetEnv("LEADERBOARD_URL", "")
	secret := config.GetEnv("LEADERBOARD_SECRET", "")
	if url == "" || secret == "" {
		log.Info().Msg("leaderboard reporting disabled")
		return nil
	}
	log.Info().Str("url", url).Msg("reporting scores to leaderboard")
	return leaderboard.NewReporter(url, leaderboard.NewSigner([]byte(secret)), nil, log.Logger)
}

// gameMiddleware handles SSH sessions and runs one game per session.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := log.With().Str("user", sess.User()).Logger()
		logger.Info().
			Str("terminal", pty.Term).
			Int("width", pty.Window.Width).
			Int("height", pty.Window.Height).
			Msg("new game session")

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		var listeners []game.Listener
		if reporter != nil {
			listeners = append(listeners, reporter.Listener(sess.User()))
		}

		c, err := client.NewClient(sessionServer, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc:   sizeTracker.getSize,
			Username:       sess.User(),
			Settings:       settings,
			HighScores:     highScores(sess.User()),
			Listeners:      listeners,
			Logger:         &logger,
			DisconnectIdle: true,
		})
		if err != nil {
			logger.Error().Err(err).Msg("cannot start game")
			return
		}
		if err := c.Run(sess.Context()); err != nil {
			logger.Error().Err(err).Msg("game error")
		}

		logger.Info().Msg("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.SizeFunc
var _ draw.SizeFunc = (*sizeTracker)(nil).getSize
