package models

import "time"

// Games with a leaderboard on the arcade page.
const (
	GameSnake  = "snake"
	GameWhack  = "whack"
	GameFlight = "flight"
	GameMemory = "memory"
)

// MaxScore is the highest score a game client can legitimately submit.
const MaxScore = 1_000_000

// LeaderboardEntry is one submitted score. Entries are append-only: there is
// no update or delete endpoint. Ranking is score descending, then most
// recent first.
type LeaderboardEntry struct {
	ID        string    `json:"id"`
	Game      string    `json:"game"`
	Nickname  string    `json:"nickname"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// IsGame reports whether s is one of the recognized games.
func IsGame(s string) bool {
	switch s {
	case GameSnake, GameWhack, GameFlight, GameMemory:
		return true
	}
	return false
}
