package server

import "sort"

// TopScoreEntry represents a single entry on the live leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Snapshot is an immutable view of the server for rendering.
type Snapshot struct {
	Players   int
	TopScores []TopScoreEntry // Best session scores, highest first
}

// topScores returns up to n sessions with a positive best, highest first;
// earlier connections win ties.
func topScores(clients map[int]*ClientHandle, n int) []TopScoreEntry {
	entries := make([]TopScoreEntry, 0, len(clients))
	for _, h := range clients {
		if h.Best > 0 {
			entries = append(entries, TopScoreEntry{Username: h.Username, Score: h.Best, clientID: h.ID})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].clientID < entries[j].clientID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
