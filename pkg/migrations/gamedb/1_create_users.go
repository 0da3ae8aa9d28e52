package gamedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/playchain/arcade-backend/pkg/pgutil/migrations"
	"github.com/playchain/arcade-backend/pkg/userstore"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating users table...")
		if err := mghelper.CreateSchema(ctx, db, &userstore.UserDao{}); err != nil {
			return err
		}
		// Create indexes
		return mghelper.CreateModelIndexes(ctx, db, &userstore.UserDao{}, "wallet_address", "score", "language")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping users table...")
		return mghelper.DropTables(ctx, db, &userstore.UserDao{})
	})
}
