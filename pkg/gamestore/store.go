package gamestore

import (
	"context"
	"time"

	"github.com/playchain/arcade-backend/pkg/game"
)

// Store defines the interface for game round persistence.
type Store interface {
	// SubmitResult atomically records a round log and credits the earned
	// score (including any bonus) to the user's cumulative total. It
	// returns the user's new total score.
	SubmitResult(ctx context.Context, log *game.Log, at time.Time) (int64, error)
	// RecentByUserAndType returns the user's most recent rounds of one
	// game type, newest first, up to limit.
	RecentByUserAndType(ctx context.Context, userID int64, t game.Type, limit int) ([]*game.Log, error)
}
