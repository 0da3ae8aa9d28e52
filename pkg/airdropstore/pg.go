package airdropstore

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/airdrop"
)

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return d, nil
}

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the payout queue store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) Insert(ctx context.Context, entry *airdrop.Entry) error {
	dao := toEntryDao(entry)
	dao.Status = string(airdrop.StatusPending)

	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to queue airdrop entry: %w", err)
	}

	entry.ID = dao.ID
	entry.Status = airdrop.StatusPending
	entry.CreatedAt = dao.CreatedAt
	return nil
}

func (s *pgStore) SelectPending(ctx context.Context, f PendingFilter) ([]*airdrop.Entry, error) {
	var daos []AirdropQueueDao
	q := s.db.NewSelect().
		Model(&daos).
		ColumnExpr("a.*").
		ColumnExpr("u.wallet_address AS wallet_address").
		Join("JOIN users AS u ON u.id = a.user_id").
		Where("a.status = ?", string(airdrop.StatusPending)).
		OrderExpr("a.created_at ASC, a.id ASC")

	if len(f.IDs) > 0 {
		q = q.Where("a.id IN (?)", bun.In(f.IDs))
	}
	if f.RewardType != nil {
		q = q.Where("a.reward_type = ?", string(*f.RewardType))
	}
	if f.MaxAmount != nil {
		q = q.Where("a.amount <= ?", *f.MaxAmount)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to select pending entries: %w", err)
	}

	entries := make([]*airdrop.Entry, len(daos))
	for i := range daos {
		entries[i] = toEntry(&daos[i])
	}
	return entries, nil
}

func (s *pgStore) MarkSuccess(ctx context.Context, id int64, txHash string, at time.Time) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*AirdropQueueDao)(nil)).
		Set("status = ?", string(airdrop.StatusSuccess)).
		Set("tx_hash = ?", txHash).
		Set("processed_at = ?", at).
		Where("id = ?", id).
		Where("status = ?", string(airdrop.StatusPending)).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark entry success: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

func (s *pgStore) MarkFailed(ctx context.Context, id int64, at time.Time) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*AirdropQueueDao)(nil)).
		Set("status = ?", string(airdrop.StatusFailed)).
		Set("processed_at = ?", at).
		Where("id = ?", id).
		Where("status = ?", string(airdrop.StatusPending)).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark entry failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

func (s *pgStore) List(ctx context.Context, status *airdrop.Status, limit, offset int) ([]*airdrop.Entry, int, error) {
	var daos []AirdropQueueDao
	q := s.db.NewSelect().
		Model(&daos).
		ColumnExpr("a.*").
		ColumnExpr("u.wallet_address AS wallet_address").
		Join("JOIN users AS u ON u.id = a.user_id").
		OrderExpr("a.created_at DESC, a.id DESC").
		Limit(limit).
		Offset(offset)

	countQ := s.db.NewSelect().Model((*AirdropQueueDao)(nil))
	if status != nil {
		q = q.Where("a.status = ?", string(*status))
		countQ = countQ.Where("status = ?", string(*status))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to list queue entries: %w", err)
	}
	total, err := countQ.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count queue entries: %w", err)
	}

	entries := make([]*airdrop.Entry, len(daos))
	for i := range daos {
		entries[i] = toEntry(&daos[i])
	}
	return entries, total, nil
}

func (s *pgStore) Stats(ctx context.Context) ([]airdrop.StatRow, error) {
	var rows []struct {
		Status     string `bun:"status"`
		RewardType string `bun:"reward_type"`
		Count      int    `bun:"count"`
		Total      string `bun:"total"`
	}

	err := s.db.NewSelect().
		Model((*AirdropQueueDao)(nil)).
		ColumnExpr("status").
		ColumnExpr("reward_type").
		ColumnExpr("COUNT(*) AS count").
		ColumnExpr("COALESCE(SUM(amount), 0) AS total").
		GroupExpr("status, reward_type").
		OrderExpr("status, reward_type").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query queue stats: %w", err)
	}

	stats := make([]airdrop.StatRow, 0, len(rows))
	for _, r := range rows {
		total, err := parseAmount(r.Total)
		if err != nil {
			return nil, err
		}
		stats = append(stats, airdrop.StatRow{
			Status:     airdrop.Status(r.Status),
			RewardType: airdrop.RewardType(r.RewardType),
			Count:      r.Count,
			Total:      total,
		})
	}
	return stats, nil
}
