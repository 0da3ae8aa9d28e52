package service

import (
	"context"
	"time"

	"github.com/playchain/arcade-backend/pkg/game"
	"github.com/playchain/arcade-backend/pkg/user"
	"github.com/playchain/arcade-backend/pkg/userstore"
)

// MockUserStore is a func-field mock implementation of UserStore
type MockUserStore struct {
	GetUserByWalletFunc func(ctx context.Context, walletAddress string) (*user.User, error)
}

func (m *MockUserStore) GetUserByWallet(ctx context.Context, walletAddress string) (*user.User, error) {
	if m.GetUserByWalletFunc != nil {
		return m.GetUserByWalletFunc(ctx, walletAddress)
	}
	return nil, userstore.ErrUserNotFound
}

// MockGameStore is a func-field mock implementation of GameStore
type MockGameStore struct {
	SubmitResultFunc        func(ctx context.Context, log *game.Log, at time.Time) (int64, error)
	RecentByUserAndTypeFunc func(ctx context.Context, userID int64, t game.Type, limit int) ([]*game.Log, error)
}

func (m *MockGameStore) SubmitResult(ctx context.Context, log *game.Log, at time.Time) (int64, error) {
	if m.SubmitResultFunc != nil {
		return m.SubmitResultFunc(ctx, log, at)
	}
	return log.Score, nil
}

func (m *MockGameStore) RecentByUserAndType(ctx context.Context, userID int64, t game.Type, limit int) ([]*game.Log, error) {
	if m.RecentByUserAndTypeFunc != nil {
		return m.RecentByUserAndTypeFunc(ctx, userID, t, limit)
	}
	return nil, nil
}

// MockInvalidator records leaderboard cache invalidations
type MockInvalidator struct {
	Calls [][]string
}

func (m *MockInvalidator) InvalidateCache(patterns ...string) int {
	m.Calls = append(m.Calls, patterns)
	return 0
}
