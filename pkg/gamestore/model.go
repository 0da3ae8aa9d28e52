package gamestore

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/game"
)

// GameLogDao is a data access object that maps directly to the 'game_logs' table in PostgreSQL.
type GameLogDao struct {
	bun.BaseModel `bun:"table:game_logs,alias:g"`
	ID            int64           `bun:"id,pk,autoincrement"`
	UserID        int64           `bun:"user_id,notnull"`
	GameType      string          `bun:"game_type,notnull,type:varchar(16)"`
	RoundID       string          `bun:"round_id,notnull,type:varchar(64)"`
	Score         int64           `bun:"score,notnull"`
	Result        json.RawMessage `bun:"result,type:jsonb"`
	Metadata      json.RawMessage `bun:"metadata,type:jsonb"`
	CreatedAt     time.Time       `bun:"created_at,nullzero,default:current_timestamp"`
}

func toGameLogDao(l *game.Log) *GameLogDao {
	return &GameLogDao{
		ID:       l.ID,
		UserID:   l.UserID,
		GameType: string(l.Type),
		RoundID:  l.RoundID,
		Score:    l.Score,
		Result:   l.Result,
		Metadata: l.Metadata,
	}
}

func toGameLog(dao *GameLogDao) *game.Log {
	return &game.Log{
		ID:        dao.ID,
		UserID:    dao.UserID,
		Type:      game.Type(dao.GameType),
		RoundID:   dao.RoundID,
		Score:     dao.Score,
		Result:    dao.Result,
		Metadata:  dao.Metadata,
		CreatedAt: dao.CreatedAt,
	}
}
