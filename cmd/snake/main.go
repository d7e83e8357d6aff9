package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/tomz197/snake/internal/audio"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/loop/client"
	"github.com/tomz197/snake/internal/loop/server"
	"github.com/tomz197/snake/internal/store"
	"github.com/tomz197/snake/internal/tui"
)

func main() {
	ansi := flag.Bool("ansi", false, "render with raw ANSI escapes instead of tcell")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	if err := run(*ansi, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

func run(ansi, mute bool) error {
	config.Load()
	logFile, err := config.LogFile()
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	config.InitLogging(logFile)

	settings := config.GameSettings()
	if err := settings.Validate(); err != nil {
		return err
	}

	player := config.GetEnv("USER", "player")
	highScores, db := openHighScores(player)
	if db != nil {
		defer db.Close()
	}

	var listeners []game.Listener
	if !mute {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		} else {
			defer sound.Cleanup()
			listeners = append(listeners, sound)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.Logger
	if ansi {
		return runANSI(ctx, player, settings, highScores, listeners)
	}

	g, err := game.New(settings, game.Options{
		HighScores: highScores,
		Listeners:  listeners,
		Logger:     &logger,
	})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return tui.New(screen, g, tui.Options{Logger: &logger}).Run(ctx)
}

// runANSI runs the escape-sequence renderer on a raw terminal, the same
// path ssh sessions take.
func runANSI(ctx context.Context, player string, settings game.Settings, scores game.HighScoreStore, listeners []game.Listener) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	srv := server.NewServer(log.Logger)
	go srv.Run(ctx)

	logger := log.Logger
	c, err := client.NewClient(srv, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username:   player,
		Settings:   settings,
		HighScores: scores,
		Listeners:  listeners,
		Logger:     &logger,
	})
	if err != nil {
		return err
	}
	return c.Run(ctx)
}

// openHighScores returns the sqlite-backed high score for player, or an
// in-memory one when the database cannot be opened.
func openHighScores(player string) (game.HighScoreStore, *sql.DB) {
	path := config.GetEnv("SNAKE_DB", defaultDBPath())
	db, err := store.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("high scores will not persist")
		return store.NewMemoryHighScores(), nil
	}
	return store.NewHighScores(db, player), db
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "snake.db"
	}
	return filepath.Join(dir, "snake", "snake.db")
}
