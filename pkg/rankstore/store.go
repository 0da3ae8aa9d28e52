package rankstore

import (
	"context"
	"errors"
)

// ErrUserNotRanked is returned when a user has no presence on the board.
var ErrUserNotRanked = errors.New("user not ranked")

// Store defines the interface for leaderboard reads. All methods hit
// the database directly; caching lives in the ranking service above.
type Store interface {
	// OverallPage pages the cumulative-score board.
	OverallPage(ctx context.Context, q Query) (*Page, error)
	// GamePage pages a single game's board, ranked by summed round score.
	GamePage(ctx context.Context, q Query) (*Page, error)
	// TopStats summarizes the board under the same filters as a page
	// query (score floor, language, verification).
	TopStats(ctx context.Context, q Query) (*TopStats, error)
	// UserRanks computes one wallet's overall and language-scoped rank
	// among verified users.
	UserRanks(ctx context.Context, walletAddress string, minScore int64) (*UserRanks, error)
}
