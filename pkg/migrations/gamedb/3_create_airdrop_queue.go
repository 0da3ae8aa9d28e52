package gamedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/airdropstore"
	mghelper "github.com/playchain/arcade-backend/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating airdrop_queue table...")
		if err := mghelper.CreateSchema(ctx, db, &airdropstore.AirdropQueueDao{}); err != nil {
			return err
		}
		// Create indexes
		return mghelper.CreateModelIndexes(ctx, db, &airdropstore.AirdropQueueDao{}, "status", "user_id", "reward_type")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping airdrop_queue table...")
		return mghelper.DropTables(ctx, db, &airdropstore.AirdropQueueDao{})
	})
}
