package userstore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/playchain/arcade-backend/pkg/pgutil"
	mghelper "github.com/playchain/arcade-backend/pkg/pgutil/migrations"
	"github.com/playchain/arcade-backend/pkg/user"
)

func setupStore(t *testing.T) (context.Context, *pgStore) {
	t.Helper()
	pgutil.RequireDockerAccess(t)

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db, &UserDao{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return ctx, NewStore(db)
}

func TestUserPGStore_CreateUserAndConstraints(t *testing.T) {
	ctx, s := setupStore(t)

	u := user.New("0x1111111111111111111111111111111111111111", "en")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected generated id to be backfilled")
	}
	if u.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be backfilled")
	}

	exists, err := s.UserExists(ctx, u.WalletAddress)
	if err != nil {
		t.Fatalf("UserExists() failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected user to exist")
	}

	dup := user.New(u.WalletAddress, "ko")
	err = s.CreateUser(ctx, dup)
	if err == nil {
		t.Fatalf("expected duplicate wallet address to fail")
	}
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected postgres error type, got: %v", err)
	}
	if !pgErr.IntegrityViolation() {
		t.Fatalf("expected unique violation SQLSTATE=23505, got %s (%v)", pgErr.Field('C'), err)
	}

	tooLong := user.New("0x"+strings.Repeat("a", 41), "en")
	err = s.CreateUser(ctx, tooLong)
	if err == nil {
		t.Fatalf("expected oversized wallet_address to fail")
	}
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected postgres error type, got: %v", err)
	}
	if pgErr.Field('C') != "22001" {
		t.Fatalf("expected value-too-long SQLSTATE=22001, got %s (%v)", pgErr.Field('C'), err)
	}
}

func TestUserPGStore_GetUserByWallet(t *testing.T) {
	ctx, s := setupStore(t)

	u := user.New("0x3333333333333333333333333333333333333333", "ko")
	u.TelegramID = "tg-42"
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	got, err := s.GetUserByWallet(ctx, u.WalletAddress)
	if err != nil {
		t.Fatalf("GetUserByWallet() failed: %v", err)
	}
	if got.WalletAddress != u.WalletAddress {
		t.Fatalf("wallet mismatch: got %s want %s", got.WalletAddress, u.WalletAddress)
	}
	if got.Language != "ko" {
		t.Fatalf("language mismatch: got %s", got.Language)
	}
	if got.TelegramID != "tg-42" {
		t.Fatalf("telegram id mismatch: got %s", got.TelegramID)
	}
	if !got.IsVerified {
		t.Fatalf("expected new user to be verified")
	}
	if got.Score != 0 {
		t.Fatalf("expected zero score, got %d", got.Score)
	}

	_, err = s.GetUserByWallet(ctx, "0x4444444444444444444444444444444444444444")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserPGStore_TouchLogin(t *testing.T) {
	ctx, s := setupStore(t)

	u := user.New("0x5555555555555555555555555555555555555555", "en")
	firstVerified := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	u.VerifiedAt = &firstVerified
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	login := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if err := s.TouchLogin(ctx, u.WalletAddress, login); err != nil {
		t.Fatalf("TouchLogin() failed: %v", err)
	}

	got, err := s.GetUserByWallet(ctx, u.WalletAddress)
	if err != nil {
		t.Fatalf("GetUserByWallet() failed: %v", err)
	}
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(login) {
		t.Fatalf("expected last_login_at %s, got %v", login, got.LastLoginAt)
	}
	// verified_at is first-write-wins.
	if got.VerifiedAt == nil || !got.VerifiedAt.Equal(firstVerified) {
		t.Fatalf("expected verified_at to keep first value, got %v", got.VerifiedAt)
	}

	err = s.TouchLogin(ctx, "0x6666666666666666666666666666666666666666", login)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown wallet, got %v", err)
	}
}

func TestUserPGStore_SetInstalled(t *testing.T) {
	ctx, s := setupStore(t)

	u := user.New("0x7777777777777777777777777777777777777777", "en")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	if err := s.SetInstalled(ctx, u.WalletAddress, "tg-99"); err != nil {
		t.Fatalf("SetInstalled() failed: %v", err)
	}

	got, err := s.GetUserByWallet(ctx, u.WalletAddress)
	if err != nil {
		t.Fatalf("GetUserByWallet() failed: %v", err)
	}
	if !got.IsInstalled {
		t.Fatalf("expected is_installed to be set")
	}
	if got.TelegramID != "tg-99" {
		t.Fatalf("expected telegram id tg-99, got %s", got.TelegramID)
	}

	// An empty telegram id leaves the stored one untouched.
	if err := s.SetInstalled(ctx, u.WalletAddress, ""); err != nil {
		t.Fatalf("SetInstalled() failed: %v", err)
	}
	got, err = s.GetUserByWallet(ctx, u.WalletAddress)
	if err != nil {
		t.Fatalf("GetUserByWallet() failed: %v", err)
	}
	if got.TelegramID != "tg-99" {
		t.Fatalf("expected telegram id to be kept, got %s", got.TelegramID)
	}

	err = s.SetInstalled(ctx, "0x8888888888888888888888888888888888888888", "")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown wallet, got %v", err)
	}
}
