package airdropstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/playchain/arcade-backend/pkg/airdrop"
)

// PendingFilter narrows the set of pending entries selected for execution.
type PendingFilter struct {
	IDs        []int64
	RewardType *airdrop.RewardType
	MaxAmount  *decimal.Decimal
	Limit      int
}

// Store defines the interface for payout queue persistence.
//
// MarkSuccess and MarkFailed guard their update with status = 'pending'
// and report whether a row transitioned, which makes settling an entry
// exactly-once even under concurrent execution runs.
type Store interface {
	Insert(ctx context.Context, entry *airdrop.Entry) error
	SelectPending(ctx context.Context, f PendingFilter) ([]*airdrop.Entry, error)
	MarkSuccess(ctx context.Context, id int64, txHash string, at time.Time) (bool, error)
	MarkFailed(ctx context.Context, id int64, at time.Time) (bool, error)
	List(ctx context.Context, status *airdrop.Status, limit, offset int) ([]*airdrop.Entry, int, error)
	Stats(ctx context.Context) ([]airdrop.StatRow, error)
}
