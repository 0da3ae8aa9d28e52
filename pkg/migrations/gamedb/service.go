// Package gamedb holds all the migrations for the game database
package gamedb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the registry the numbered migration files register into.
var Migrations = migrate.NewMigrations()
