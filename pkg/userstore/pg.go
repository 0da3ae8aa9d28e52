package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/user"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the user store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) CreateUser(ctx context.Context, usr *user.User) error {
	dao := toUserDao(usr)

	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	usr.ID = dao.ID
	usr.CreatedAt = dao.CreatedAt
	return nil
}

func (s *pgStore) GetUserByWallet(ctx context.Context, walletAddress string) (*user.User, error) {
	dao := new(UserDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("wallet_address = ?", walletAddress).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUser(dao), nil
}

func (s *pgStore) UserExists(ctx context.Context, walletAddress string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*UserDao)(nil)).
		Where("wallet_address = ?", walletAddress).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check user exists: %w", err)
	}
	return exists, nil
}

func (s *pgStore) TouchLogin(ctx context.Context, walletAddress string, at time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*UserDao)(nil)).
		Set("is_verified = TRUE").
		Set("verified_at = COALESCE(verified_at, ?)", at).
		Set("last_login_at = ?", at).
		Where("wallet_address = ?", walletAddress).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to touch login: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *pgStore) SetInstalled(ctx context.Context, walletAddress, telegramID string) error {
	q := s.db.NewUpdate().
		Model((*UserDao)(nil)).
		Set("is_installed = TRUE").
		Where("wallet_address = ?", walletAddress)
	if telegramID != "" {
		q = q.Set("telegram_id = ?", telegramID)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to confirm install: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
