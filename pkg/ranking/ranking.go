// Package ranking defines the leaderboard response contracts.
package ranking

import (
	"time"

	"github.com/playchain/arcade-backend/pkg/rankstore"
)

// Entry is one leaderboard row plus its airdrop eligibility flag.
type Entry struct {
	rankstore.Row
	AirdropEligible bool `json:"isAirdropEligible"`
}

// Pagination describes the page window of a board response.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Filters echoes the normalized query a page was computed for.
type Filters struct {
	GameType     string `json:"gameType,omitempty"`
	Language     string `json:"language,omitempty"`
	VerifiedOnly bool   `json:"verifiedOnly"`
}

// Response is one leaderboard page. Cached reports whether the page was
// served from the in-process cache rather than recomputed.
type Response struct {
	Success     bool       `json:"success"`
	Ranking     []Entry    `json:"ranking"`
	Filters     Filters    `json:"filters"`
	Pagination  Pagination `json:"pagination"`
	Cached      bool       `json:"cached"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// TopResponse is the head of the board plus aggregate stats.
type TopResponse struct {
	Success     bool                `json:"success"`
	Entries     []Entry             `json:"entries"`
	Stats       *rankstore.TopStats `json:"stats"`
	Cached      bool                `json:"cached"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// UserResponse is one user's board position.
type UserResponse struct {
	Success         bool                 `json:"success"`
	User            *rankstore.UserRanks `json:"user"`
	AirdropEligible bool                 `json:"isAirdropEligible"`
	Cached          bool                 `json:"cached"`
	GeneratedAt     time.Time            `json:"generatedAt"`
}

// InvalidateRequest names the cache key substrings to drop; an empty
// list clears everything.
type InvalidateRequest struct {
	Patterns []string `json:"patterns,omitempty"`
}

// InvalidateResponse reports how many cached entries were removed.
type InvalidateResponse struct {
	Success bool `json:"success"`
	Removed int  `json:"removed"`
}
