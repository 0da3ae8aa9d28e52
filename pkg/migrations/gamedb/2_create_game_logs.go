package gamedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/gamestore"
	mghelper "github.com/playchain/arcade-backend/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating game_logs table...")
		if err := mghelper.CreateSchema(ctx, db, &gamestore.GameLogDao{}); err != nil {
			return err
		}
		// Create indexes
		return mghelper.CreateModelIndexes(ctx, db, &gamestore.GameLogDao{}, "user_id", "game_type", "created_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping game_logs table...")
		return mghelper.DropTables(ctx, db, &gamestore.GameLogDao{})
	})
}
