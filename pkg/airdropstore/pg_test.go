package airdropstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/playchain/arcade-backend/pkg/airdrop"
	"github.com/playchain/arcade-backend/pkg/pgutil"
	mghelper "github.com/playchain/arcade-backend/pkg/pgutil/migrations"
	"github.com/playchain/arcade-backend/pkg/user"
	"github.com/playchain/arcade-backend/pkg/userstore"
)

func setupStore(t *testing.T) (context.Context, *pgStore, userstore.Store) {
	t.Helper()
	pgutil.RequireDockerAccess(t)

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db, &userstore.UserDao{}, &AirdropQueueDao{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return ctx, NewStore(db), userstore.NewStore(db)
}

func queueEntry(t *testing.T, ctx context.Context, s *pgStore, userID int64, rewardType airdrop.RewardType, amount string) *airdrop.Entry {
	t.Helper()
	entry := &airdrop.Entry{
		UserID:     userID,
		RewardType: rewardType,
		Amount:     decimal.RequireFromString(amount),
	}
	if err := s.Insert(ctx, entry); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	return entry
}

func TestAirdropPGStore_InsertAndSelectPending(t *testing.T) {
	ctx, s, users := setupStore(t)

	u := user.New("0x1111111111111111111111111111111111111111", "en")
	if err := users.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	first := queueEntry(t, ctx, s, u.ID, airdrop.RewardRanking, "10")
	second := queueEntry(t, ctx, s, u.ID, airdrop.RewardEvent, "25.5")
	if first.ID == 0 || first.Status != airdrop.StatusPending {
		t.Fatalf("expected backfilled pending entry, got %+v", first)
	}

	pending, err := s.SelectPending(ctx, PendingFilter{})
	if err != nil {
		t.Fatalf("SelectPending() failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending entries, got %d", len(pending))
	}
	// Oldest first, wallet joined in from users.
	if pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Fatalf("unexpected order: %d, %d", pending[0].ID, pending[1].ID)
	}
	if pending[0].WalletAddress != u.WalletAddress {
		t.Fatalf("expected joined wallet %s, got %s", u.WalletAddress, pending[0].WalletAddress)
	}

	rt := airdrop.RewardEvent
	pending, err = s.SelectPending(ctx, PendingFilter{RewardType: &rt})
	if err != nil {
		t.Fatalf("SelectPending() failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Fatalf("expected only the event entry, got %+v", pending)
	}

	max := decimal.RequireFromString("20")
	pending, err = s.SelectPending(ctx, PendingFilter{MaxAmount: &max})
	if err != nil {
		t.Fatalf("SelectPending() failed: %v", err)
	}
	if len(pending) != 1 || !pending[0].Amount.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected only the small entry, got %+v", pending)
	}
}

func TestAirdropPGStore_MarkSuccessIsExactlyOnce(t *testing.T) {
	ctx, s, users := setupStore(t)

	u := user.New("0x2222222222222222222222222222222222222222", "en")
	if err := users.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	entry := queueEntry(t, ctx, s, u.ID, airdrop.RewardRanking, "10")

	at := time.Now()
	settled, err := s.MarkSuccess(ctx, entry.ID, "0xdeadbeef", at)
	if err != nil {
		t.Fatalf("MarkSuccess() failed: %v", err)
	}
	if !settled {
		t.Fatalf("expected first settlement to win")
	}

	// A racing second settlement finds no pending row and loses.
	settled, err = s.MarkSuccess(ctx, entry.ID, "0xother", at)
	if err != nil {
		t.Fatalf("MarkSuccess() failed: %v", err)
	}
	if settled {
		t.Fatalf("expected second settlement to lose")
	}

	settled, err = s.MarkFailed(ctx, entry.ID, at)
	if err != nil {
		t.Fatalf("MarkFailed() failed: %v", err)
	}
	if settled {
		t.Fatalf("a settled entry must not transition to failed")
	}

	pending, err := s.SelectPending(ctx, PendingFilter{})
	if err != nil {
		t.Fatalf("SelectPending() failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending entries left, got %d", len(pending))
	}
}

func TestAirdropPGStore_ListAndStats(t *testing.T) {
	ctx, s, users := setupStore(t)

	u := user.New("0x3333333333333333333333333333333333333333", "en")
	if err := users.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	queueEntry(t, ctx, s, u.ID, airdrop.RewardRanking, "10")
	queueEntry(t, ctx, s, u.ID, airdrop.RewardRanking, "15")
	settledEntry := queueEntry(t, ctx, s, u.ID, airdrop.RewardEvent, "5")
	if _, err := s.MarkSuccess(ctx, settledEntry.ID, "0xhash", time.Now()); err != nil {
		t.Fatalf("MarkSuccess() failed: %v", err)
	}

	entries, total, err := s.List(ctx, nil, 10, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if total != 3 || len(entries) != 3 {
		t.Fatalf("expected 3 entries, got total=%d len=%d", total, len(entries))
	}
	// Newest first.
	if entries[0].ID != settledEntry.ID {
		t.Fatalf("expected newest entry first, got %d", entries[0].ID)
	}
	if entries[0].TxHash != "0xhash" {
		t.Fatalf("expected tx hash on settled entry, got %q", entries[0].TxHash)
	}

	status := airdrop.StatusPending
	entries, total, err = s.List(ctx, &status, 10, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if total != 2 || len(entries) != 2 {
		t.Fatalf("expected 2 pending entries, got total=%d len=%d", total, len(entries))
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 stat groups, got %d", len(stats))
	}
	for _, row := range stats {
		switch {
		case row.Status == airdrop.StatusPending && row.RewardType == airdrop.RewardRanking:
			if row.Count != 2 || !row.Total.Equal(decimal.RequireFromString("25")) {
				t.Fatalf("unexpected pending group: %+v", row)
			}
		case row.Status == airdrop.StatusSuccess && row.RewardType == airdrop.RewardEvent:
			if row.Count != 1 || !row.Total.Equal(decimal.RequireFromString("5")) {
				t.Fatalf("unexpected success group: %+v", row)
			}
		default:
			t.Fatalf("unexpected stat group: %+v", row)
		}
	}
}
