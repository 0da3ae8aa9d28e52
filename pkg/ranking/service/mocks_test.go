package service

import (
	"context"

	"github.com/playchain/arcade-backend/pkg/rankstore"
)

// MockRankStore is a func-field mock implementation of rankstore.Store
type MockRankStore struct {
	OverallPageFunc func(ctx context.Context, q rankstore.Query) (*rankstore.Page, error)
	GamePageFunc    func(ctx context.Context, q rankstore.Query) (*rankstore.Page, error)
	TopStatsFunc    func(ctx context.Context, q rankstore.Query) (*rankstore.TopStats, error)
	UserRanksFunc   func(ctx context.Context, walletAddress string, minScore int64) (*rankstore.UserRanks, error)
}

func (m *MockRankStore) OverallPage(ctx context.Context, q rankstore.Query) (*rankstore.Page, error) {
	if m.OverallPageFunc != nil {
		return m.OverallPageFunc(ctx, q)
	}
	return &rankstore.Page{}, nil
}

func (m *MockRankStore) GamePage(ctx context.Context, q rankstore.Query) (*rankstore.Page, error) {
	if m.GamePageFunc != nil {
		return m.GamePageFunc(ctx, q)
	}
	return &rankstore.Page{}, nil
}

func (m *MockRankStore) TopStats(ctx context.Context, q rankstore.Query) (*rankstore.TopStats, error) {
	if m.TopStatsFunc != nil {
		return m.TopStatsFunc(ctx, q)
	}
	return &rankstore.TopStats{}, nil
}

func (m *MockRankStore) UserRanks(ctx context.Context, walletAddress string, minScore int64) (*rankstore.UserRanks, error) {
	if m.UserRanksFunc != nil {
		return m.UserRanksFunc(ctx, walletAddress, minScore)
	}
	return nil, rankstore.ErrUserNotRanked
}
