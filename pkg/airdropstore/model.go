package airdropstore

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/airdrop"
)

// AirdropQueueDao is a data access object that maps directly to the
// 'airdrop_queue' table in PostgreSQL. WalletAddress is joined in from
// users on read and never written through this model.
type AirdropQueueDao struct {
	bun.BaseModel `bun:"table:airdrop_queue,alias:a"`
	ID            int64           `bun:"id,pk,autoincrement"`
	UserID        int64           `bun:"user_id,notnull"`
	RewardType    string          `bun:"reward_type,notnull,type:varchar(16)"`
	Amount        decimal.Decimal `bun:"amount,notnull,type:numeric(38,18)"`
	Status        string          `bun:"status,notnull,type:varchar(16),default:'pending'"`
	TxHash        *string         `bun:"tx_hash,type:varchar(66)"`
	Description   *string         `bun:"description,type:varchar(500)"`
	CreatedAt     time.Time       `bun:"created_at,nullzero,default:current_timestamp"`
	ProcessedAt   *time.Time      `bun:"processed_at"`
	WalletAddress string          `bun:"wallet_address,scanonly"`
}

func toEntryDao(e *airdrop.Entry) *AirdropQueueDao {
	dao := &AirdropQueueDao{
		ID:         e.ID,
		UserID:     e.UserID,
		RewardType: string(e.RewardType),
		Amount:     e.Amount,
		Status:     string(e.Status),
	}

	if e.TxHash != "" {
		dao.TxHash = &e.TxHash
	}
	if e.Description != "" {
		dao.Description = &e.Description
	}
	if e.ProcessedAt != nil {
		dao.ProcessedAt = e.ProcessedAt
	}

	return dao
}

func toEntry(dao *AirdropQueueDao) *airdrop.Entry {
	e := &airdrop.Entry{
		ID:            dao.ID,
		UserID:        dao.UserID,
		WalletAddress: dao.WalletAddress,
		RewardType:    airdrop.RewardType(dao.RewardType),
		Amount:        dao.Amount,
		Status:        airdrop.Status(dao.Status),
		CreatedAt:     dao.CreatedAt,
	}

	if dao.TxHash != nil {
		e.TxHash = *dao.TxHash
	}
	if dao.Description != nil {
		e.Description = *dao.Description
	}
	if dao.ProcessedAt != nil {
		e.ProcessedAt = dao.ProcessedAt
	}

	return e
}
