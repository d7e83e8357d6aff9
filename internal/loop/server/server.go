// Package server tracks the sessions connected to a host: who is playing,
// their best scores, and shutdown notification.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/snake/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the session server.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID, score int)
	GetSnapshot() *Snapshot
}

// Server owns the session registry. Clients run their own games; the
// server only aggregates what they report.
type Server struct {
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	scoreCh      chan ClientScore
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	log          zerolog.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	Best     int              // Best score this session
	EventsCh chan ClientEvent // Events sent to client (shutdown)
}

// ClientScore is a score reported by a client.
type ClientScore struct {
	ClientID int
	Score    int
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates a new session server.
func NewServer(logger zerolog.Logger) *Server {
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		scoreCh:      make(chan ClientScore, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		log:          logger,
	}

	// Create initial empty snapshot
	s.snapshot.Store(&Snapshot{})
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		s.processRegistrations()
		s.collectScores()
		s.createSnapshot()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.log.Warn().Int("remaining", s.clientCount()).Msg("shutdown timeout with clients connected")
			return
		case <-ticker.C:
			if s.clientCount() == 0 {
				return
			}
		}
	}
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: truncateName(username),
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportScore records a score reached by a client. Only the session best
// is kept.
func (s *Server) ReportScore(clientID, score int) {
	select {
	case s.scoreCh <- ClientScore{ClientID: clientID, Score: score}:
	default:
		// Score channel full, drop report
	}
}

// GetSnapshot returns the current snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Debug().Int("client", handle.ID).Str("user", handle.Username).Msg("client registered")
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			s.log.Debug().Int("client", clientID).Msg("client unregistered")
		default:
			return
		}
	}
}

// collectScores applies pending score reports.
func (s *Server) collectScores() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cs := <-s.scoreCh:
			if handle, ok := s.clients[cs.ClientID]; ok && cs.Score > handle.Best {
				handle.Best = cs.Score
			}
		default:
			return
		}
	}
}

// createSnapshot publishes an immutable view of the registry.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.snapshot.Store(&Snapshot{
		Players:   len(s.clients),
		TopScores: topScores(s.clients, config.TopScoresShown),
	})
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > config.MaxUsernameLength {
		return string(r[:config.MaxUsernameLength])
	}
	return name
}
