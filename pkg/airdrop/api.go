package airdrop

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryInfo is the client-facing projection of a queue entry.
type EntryInfo struct {
	ID            int64           `json:"id"`
	WalletAddress string          `json:"walletAddress"`
	RewardType    RewardType      `json:"rewardType"`
	Amount        decimal.Decimal `json:"amount"`
	Status        Status          `json:"status"`
	TxHash        string          `json:"txHash,omitempty"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
}

// ToEntryInfo projects a domain entry into the client-facing shape.
func ToEntryInfo(e *Entry) *EntryInfo {
	return &EntryInfo{
		ID:            e.ID,
		WalletAddress: e.WalletAddress,
		RewardType:    e.RewardType,
		Amount:        e.Amount,
		Status:        e.Status,
		TxHash:        e.TxHash,
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
		ProcessedAt:   e.ProcessedAt,
	}
}

// QueueRequest adds one pending payout for a wallet.
type QueueRequest struct {
	WalletAddress string          `json:"walletAddress" validate:"required"`
	RewardType    RewardType      `json:"rewardType" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Description   string          `json:"description,omitempty"`
}

// QueueResponse acknowledges a queued payout.
type QueueResponse struct {
	Success bool       `json:"success"`
	Entry   *EntryInfo `json:"entry"`
}

// ExecuteRequest selects which pending entries to settle. All filters
// are optional; DryRun reports what would be sent without touching the
// chain or the queue.
type ExecuteRequest struct {
	IDs        []int64          `json:"ids,omitempty"`
	RewardType *RewardType      `json:"rewardType,omitempty"`
	MaxAmount  *decimal.Decimal `json:"maxAmount,omitempty"`
	DryRun     bool             `json:"dryRun,omitempty"`
}

// ExecutedItem is the per-entry outcome of one execution run.
type ExecutedItem struct {
	ID            int64           `json:"id"`
	WalletAddress string          `json:"walletAddress"`
	Amount        decimal.Decimal `json:"amount"`
	Status        Status          `json:"status"`
	TxHash        string          `json:"txHash,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// ExecuteResponse summarizes one execution run. A transfer failure
// marks its entry failed and the run continues; Failed counts those
// entries rather than aborting the batch.
type ExecuteResponse struct {
	Success     bool            `json:"success"`
	BatchID     string          `json:"batchId"`
	Processed   int             `json:"processed"`
	Failed      int             `json:"failed"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	DryRun      bool            `json:"dryRun"`
	Items       []ExecutedItem  `json:"items"`
}

// ListResponse is one page of the queue.
type ListResponse struct {
	Success bool         `json:"success"`
	Entries []*EntryInfo `json:"entries"`
	Total   int          `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

// StatsResponse is the grouped queue statistics.
type StatsResponse struct {
	Success bool      `json:"success"`
	Stats   []StatRow `json:"stats"`
}
