package rankstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/game"
	"github.com/playchain/arcade-backend/pkg/gamestore"
	"github.com/playchain/arcade-backend/pkg/pgutil"
	mghelper "github.com/playchain/arcade-backend/pkg/pgutil/migrations"
	"github.com/playchain/arcade-backend/pkg/userstore"
)

func setupStore(t *testing.T) (context.Context, *pgStore) {
	t.Helper()
	pgutil.RequireDockerAccess(t)

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db, &userstore.UserDao{}, &gamestore.GameLogDao{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return ctx, NewStore(db)
}

func seedUser(t *testing.T, ctx context.Context, db *bun.DB, wallet string, score int64, language string, verified bool, createdAt time.Time) int64 {
	t.Helper()
	dao := &userstore.UserDao{
		WalletAddress: wallet,
		Score:         score,
		Language:      language,
		IsVerified:    verified,
		CreatedAt:     createdAt,
	}
	if _, err := db.NewInsert().Model(dao).Exec(ctx); err != nil {
		t.Fatalf("failed to seed user %s: %v", wallet, err)
	}
	return dao.ID
}

func seedLog(t *testing.T, ctx context.Context, db *bun.DB, userID int64, typ game.Type, score int64) {
	t.Helper()
	dao := &gamestore.GameLogDao{
		UserID:   userID,
		GameType: string(typ),
		RoundID:  "seed",
		Score:    score,
	}
	if _, err := db.NewInsert().Model(dao).Exec(ctx); err != nil {
		t.Fatalf("failed to seed game log: %v", err)
	}
}

func TestRankPGStore_OverallPage(t *testing.T) {
	ctx, s := setupStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, ctx, s.db, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 300, "en", true, base)
	seedUser(t, ctx, s.db, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 200, "en", true, base.Add(time.Hour))
	seedUser(t, ctx, s.db, "0xcccccccccccccccccccccccccccccccccccccccc", 200, "ko", true, base.Add(2*time.Hour))
	seedUser(t, ctx, s.db, "0xdddddddddddddddddddddddddddddddddddddddd", 50, "en", true, base)

	page, err := s.OverallPage(ctx, Query{MinScore: 100, Limit: 10})
	if err != nil {
		t.Fatalf("OverallPage() failed: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected total 3 above the floor, got %d", page.Total)
	}
	if len(page.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(page.Rows))
	}

	// Tied scores still receive distinct positional ranks, older account first.
	wantWallets := []string{
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"0xcccccccccccccccccccccccccccccccccccccccc",
	}
	for i, row := range page.Rows {
		if row.Rank != i+1 {
			t.Fatalf("row %d: expected rank %d, got %d", i, i+1, row.Rank)
		}
		if row.WalletAddress != wantWallets[i] {
			t.Fatalf("row %d: expected %s, got %s", i, wantWallets[i], row.WalletAddress)
		}
	}

	// Paging continues the positional ranks from the offset.
	page, err = s.OverallPage(ctx, Query{MinScore: 100, Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("OverallPage() failed: %v", err)
	}
	if len(page.Rows) != 1 || page.Rows[0].Rank != 2 {
		t.Fatalf("expected single row with rank 2, got %+v", page.Rows)
	}
	if page.Total != 3 {
		t.Fatalf("expected total to ignore paging, got %d", page.Total)
	}

	// Language filter narrows the board.
	ko := "ko"
	page, err = s.OverallPage(ctx, Query{MinScore: 100, Language: &ko, Limit: 10})
	if err != nil {
		t.Fatalf("OverallPage() failed: %v", err)
	}
	if page.Total != 1 || page.Rows[0].Language != "ko" {
		t.Fatalf("expected one korean row, got %+v", page.Rows)
	}
}

func TestRankPGStore_OverallPageVerifiedOnly(t *testing.T) {
	ctx, s := setupStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, ctx, s.db, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 300, "en", true, base)
	seedUser(t, ctx, s.db, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 400, "en", false, base)

	page, err := s.OverallPage(ctx, Query{VerifiedOnly: true, Limit: 10})
	if err != nil {
		t.Fatalf("OverallPage() failed: %v", err)
	}
	if page.Total != 1 || page.Rows[0].WalletAddress != "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Fatalf("expected only the verified user, got %+v", page.Rows)
	}
}

func TestRankPGStore_GamePage(t *testing.T) {
	ctx, s := setupStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	x := seedUser(t, ctx, s.db, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 0, "en", true, base)
	y := seedUser(t, ctx, s.db, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 0, "en", true, base.Add(time.Hour))
	z := seedUser(t, ctx, s.db, "0xcccccccccccccccccccccccccccccccccccccccc", 0, "en", true, base)

	seedLog(t, ctx, s.db, x, game.TypeDice, 30)
	seedLog(t, ctx, s.db, x, game.TypeDice, 20)
	seedLog(t, ctx, s.db, y, game.TypeDice, 50)
	seedLog(t, ctx, s.db, z, game.TypeDice, 20)
	// Scores from another game must not leak into the dice board.
	seedLog(t, ctx, s.db, z, game.TypeDarts, 500)

	dice := game.TypeDice
	page, err := s.GamePage(ctx, Query{GameType: &dice, Limit: 10})
	if err != nil {
		t.Fatalf("GamePage() failed: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected 3 ranked players, got %d", page.Total)
	}

	// x and y tie at 50; both hold rank 1 and z follows at rank 3.
	if page.Rows[0].Rank != 1 || page.Rows[1].Rank != 1 {
		t.Fatalf("expected shared rank 1, got %d and %d", page.Rows[0].Rank, page.Rows[1].Rank)
	}
	if page.Rows[0].WalletAddress != "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Fatalf("expected older account first within the tie, got %s", page.Rows[0].WalletAddress)
	}
	if page.Rows[2].Rank != 3 || page.Rows[2].Score != 20 {
		t.Fatalf("expected rank 3 with score 20, got rank %d score %d", page.Rows[2].Rank, page.Rows[2].Score)
	}
	if page.Rows[0].GameCount != 2 {
		t.Fatalf("expected 2 dice rounds for the leader, got %d", page.Rows[0].GameCount)
	}

	// The score floor applies to the per-game sum.
	page, err = s.GamePage(ctx, Query{GameType: &dice, MinScore: 30, Limit: 10})
	if err != nil {
		t.Fatalf("GamePage() failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected floor to drop the 20-point player, got %d", page.Total)
	}
}

func TestRankPGStore_GamePageExcludesZeroSums(t *testing.T) {
	ctx, s := setupStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	x := seedUser(t, ctx, s.db, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 0, "en", true, base)
	y := seedUser(t, ctx, s.db, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 0, "en", true, base)

	seedLog(t, ctx, s.db, x, game.TypeDice, 40)
	// y only ever lost, so their dice sum is zero.
	seedLog(t, ctx, s.db, y, game.TypeDice, 0)
	seedLog(t, ctx, s.db, y, game.TypeDice, 0)

	// A zero floor must not admit players who never scored.
	dice := game.TypeDice
	page, err := s.GamePage(ctx, Query{GameType: &dice, MinScore: 0, Limit: 10})
	if err != nil {
		t.Fatalf("GamePage() failed: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected the zero-sum player to be excluded, got total %d", page.Total)
	}
	if page.Rows[0].WalletAddress != "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Fatalf("expected only the scoring player, got %s", page.Rows[0].WalletAddress)
	}
}

func TestRankPGStore_TopStats(t *testing.T) {
	ctx, s := setupStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, ctx, s.db, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 100, "en", true, base)
	seedUser(t, ctx, s.db, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 201, "ko", true, base)
	seedUser(t, ctx, s.db, "0xcccccccccccccccccccccccccccccccccccccccc", 10, "ja", true, base)

	stats, err := s.TopStats(ctx, Query{MinScore: 50})
	if err != nil {
		t.Fatalf("TopStats() failed: %v", err)
	}
	if stats.TotalPlayers != 2 {
		t.Fatalf("expected 2 players above the floor, got %d", stats.TotalPlayers)
	}
	if stats.HighestScore != 201 {
		t.Fatalf("expected highest 201, got %d", stats.HighestScore)
	}
	// AVG(100, 201) rounds to 151 in the database.
	if stats.AverageScore != 151 {
		t.Fatalf("expected rounded average 151, got %d", stats.AverageScore)
	}
	if len(stats.Languages) != 2 || stats.Languages[0] != "en" || stats.Languages[1] != "ko" {
		t.Fatalf("expected sorted languages [en ko], got %v", stats.Languages)
	}
}

func TestRankPGStore_TopStatsFilters(t *testing.T) {
	ctx, s := setupStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, ctx, s.db, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 100, "en", true, base)
	seedUser(t, ctx, s.db, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 900, "en", false, base)
	seedUser(t, ctx, s.db, "0xcccccccccccccccccccccccccccccccccccccccc", 200, "ko", true, base)

	// Stats describe the same board the page queries serve, so the
	// unverified high scorer stays out of the aggregates.
	stats, err := s.TopStats(ctx, Query{VerifiedOnly: true, MinScore: 1})
	if err != nil {
		t.Fatalf("TopStats() failed: %v", err)
	}
	if stats.TotalPlayers != 2 || stats.HighestScore != 200 {
		t.Fatalf("expected 2 verified players with highest 200, got %d/%d",
			stats.TotalPlayers, stats.HighestScore)
	}

	ko := "ko"
	stats, err = s.TopStats(ctx, Query{VerifiedOnly: true, Language: &ko, MinScore: 1})
	if err != nil {
		t.Fatalf("TopStats() failed: %v", err)
	}
	if stats.TotalPlayers != 1 || stats.HighestScore != 200 {
		t.Fatalf("expected only the korean player, got %d/%d",
			stats.TotalPlayers, stats.HighestScore)
	}
	if len(stats.Languages) != 1 || stats.Languages[0] != "ko" {
		t.Fatalf("expected languages [ko], got %v", stats.Languages)
	}
}

func TestRankPGStore_UserRanks(t *testing.T) {
	ctx, s := setupStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, ctx, s.db, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 300, "en", true, base)
	seedUser(t, ctx, s.db, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 200, "ko", true, base.Add(time.Hour))
	seedUser(t, ctx, s.db, "0xcccccccccccccccccccccccccccccccccccccccc", 200, "ko", true, base.Add(2*time.Hour))

	// The later tied account ranks behind the earlier one, matching the
	// board ordering.
	ranks, err := s.UserRanks(ctx, "0xcccccccccccccccccccccccccccccccccccccccc", 0)
	if err != nil {
		t.Fatalf("UserRanks() failed: %v", err)
	}
	if ranks.OverallRank != 3 {
		t.Fatalf("expected overall rank 3, got %d", ranks.OverallRank)
	}
	if ranks.LanguageRank != 2 {
		t.Fatalf("expected language rank 2, got %d", ranks.LanguageRank)
	}
	if ranks.Score != 200 {
		t.Fatalf("expected score 200, got %d", ranks.Score)
	}

	ranks, err = s.UserRanks(ctx, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 0)
	if err != nil {
		t.Fatalf("UserRanks() failed: %v", err)
	}
	if ranks.OverallRank != 1 || ranks.LanguageRank != 1 {
		t.Fatalf("expected leader ranks 1/1, got %d/%d", ranks.OverallRank, ranks.LanguageRank)
	}

	_, err = s.UserRanks(ctx, "0xdddddddddddddddddddddddddddddddddddddddd", 0)
	if !errors.Is(err, ErrUserNotRanked) {
		t.Fatalf("expected ErrUserNotRanked, got %v", err)
	}
}

func TestRankPGStore_UserRanksIgnoreUnverified(t *testing.T) {
	ctx, s := setupStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, ctx, s.db, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 300, "en", true, base)
	// Unverified users never appear on the board, so they must not
	// push a verified user's rank down either.
	seedUser(t, ctx, s.db, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 900, "en", false, base)

	ranks, err := s.UserRanks(ctx, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 0)
	if err != nil {
		t.Fatalf("UserRanks() failed: %v", err)
	}
	if ranks.OverallRank != 1 {
		t.Fatalf("expected rank 1 despite the unverified high scorer, got %d", ranks.OverallRank)
	}
	if ranks.LanguageRank != 1 {
		t.Fatalf("expected language rank 1, got %d", ranks.LanguageRank)
	}
}
