package rankstore

import (
	"time"

	"github.com/playchain/arcade-backend/pkg/game"
)

// Query narrows a leaderboard page. A nil GameType means the overall
// board (cumulative user score); a set GameType ranks by the summed
// score of that game's rounds only.
type Query struct {
	GameType     *game.Type
	Language     *string
	VerifiedOnly bool
	MinScore     int64
	Limit        int
	Offset       int
}

// Row is one leaderboard entry.
//
// Overall pages assign Rank positionally from the page offset, so ties
// keep distinct ranks. Per-game pages use a SQL RANK() window over the
// full grouped set, so ties share a rank. The asymmetry is deliberate
// and relied upon by clients.
type Row struct {
	Rank          int        `json:"rank" bun:"rank"`
	UserID        int64      `json:"userId" bun:"user_id"`
	WalletAddress string     `json:"walletAddress" bun:"wallet_address"`
	Score         int64      `json:"score" bun:"score"`
	GameCount     int        `json:"gameCount" bun:"game_count"`
	Language      string     `json:"language" bun:"language"`
	CreatedAt     time.Time  `json:"createdAt" bun:"created_at"`
	LastPlayedAt  *time.Time `json:"lastPlayedAt,omitempty" bun:"last_played_at"`
}

// Page is one leaderboard page plus the total row count matching the query.
type Page struct {
	Rows  []Row
	Total int
}

// TopStats summarizes the board under a page query's filters.
type TopStats struct {
	TotalPlayers int      `json:"totalPlayers" bun:"total_players"`
	AverageScore int64    `json:"averageScore" bun:"average_score"`
	HighestScore int64    `json:"highestScore" bun:"highest_score"`
	Languages    []string `json:"languages" bun:"-"`
}

// UserRanks holds one user's position overall and within their language group.
type UserRanks struct {
	UserID        int64      `json:"userId"`
	WalletAddress string     `json:"walletAddress"`
	Score         int64      `json:"score"`
	Language      string     `json:"language"`
	OverallRank   int        `json:"overallRank"`
	LanguageRank  int        `json:"languageRank"`
	LastPlayedAt  *time.Time `json:"lastPlayedAt,omitempty"`
}
