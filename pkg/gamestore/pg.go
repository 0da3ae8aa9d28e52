package gamestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/game"
	"github.com/playchain/arcade-backend/pkg/userstore"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the game log store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) SubmitResult(ctx context.Context, log *game.Log, at time.Time) (int64, error) {
	var newScore int64

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dao := toGameLogDao(log)
		if _, err := tx.NewInsert().
			Model(dao).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert game log: %w", err)
		}
		log.ID = dao.ID
		log.CreatedAt = dao.CreatedAt

		err := tx.NewRaw(
			"UPDATE users SET score = score + ?, last_played_at = ? WHERE id = ? RETURNING score",
			log.Score, at, log.UserID,
		).Scan(ctx, &newScore)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return userstore.ErrUserNotFound
			}
			return fmt.Errorf("failed to credit score: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newScore, nil
}

func (s *pgStore) RecentByUserAndType(ctx context.Context, userID int64, t game.Type, limit int) ([]*game.Log, error) {
	var daos []GameLogDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("user_id = ?", userID).
		Where("game_type = ?", string(t)).
		OrderExpr("created_at DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent game logs: %w", err)
	}

	logs := make([]*game.Log, len(daos))
	for i := range daos {
		logs[i] = toGameLog(&daos[i])
	}
	return logs, nil
}
