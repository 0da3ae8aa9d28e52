// Package airdrop defines the payout queue domain model.
package airdrop

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardType classifies why a payout was queued.
type RewardType string

// The reward enumeration is the canonical union of the historical variants;
// the divergent subsets used by older callers are a resolved bug, not a
// contract.
const (
	RewardRanking  RewardType = "ranking"
	RewardEvent    RewardType = "event"
	RewardReferral RewardType = "referral"
	RewardBonus    RewardType = "bonus"
	RewardAdmin    RewardType = "admin"
	RewardMission  RewardType = "mission"
)

// AllRewardTypes lists every accepted reward type.
var AllRewardTypes = []RewardType{
	RewardRanking, RewardEvent, RewardReferral, RewardBonus, RewardAdmin, RewardMission,
}

// Valid reports whether t is an accepted reward type.
func (t RewardType) Valid() bool {
	for _, known := range AllRewardTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Status is the settlement state of a queue entry.
// An entry is created pending and transitions exactly once to success
// (with a tx hash) or failed; it never transitions again.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Entry is one queued or settled payout.
type Entry struct {
	ID            int64
	UserID        int64
	WalletAddress string
	RewardType    RewardType
	Amount        decimal.Decimal
	Status        Status
	TxHash        string
	Description   string
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}

// StatRow is one row of the grouped queue statistics.
type StatRow struct {
	Status     Status          `json:"status"`
	RewardType RewardType      `json:"rewardType"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
}
