// Package config centralizes the tunables of the terminal frontends.
package config

import "time"

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Leaderboard of live sessions
const (
	TopScoresShown = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate. The server only tracks sessions, so it runs slower
// than the clients.
const (
	ServerTickRate = 10
	ServerTickTime = time.Second / ServerTickRate
)
