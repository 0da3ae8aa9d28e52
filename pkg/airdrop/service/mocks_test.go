package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/playchain/arcade-backend/pkg/airdrop"
	"github.com/playchain/arcade-backend/pkg/airdropstore"
	"github.com/playchain/arcade-backend/pkg/user"
	"github.com/playchain/arcade-backend/pkg/userstore"
)

// MockQueueStore is a func-field mock implementation of airdropstore.Store
type MockQueueStore struct {
	InsertFunc        func(ctx context.Context, entry *airdrop.Entry) error
	SelectPendingFunc func(ctx context.Context, f airdropstore.PendingFilter) ([]*airdrop.Entry, error)
	MarkSuccessFunc   func(ctx context.Context, id int64, txHash string, at time.Time) (bool, error)
	MarkFailedFunc    func(ctx context.Context, id int64, at time.Time) (bool, error)
	ListFunc          func(ctx context.Context, status *airdrop.Status, limit, offset int) ([]*airdrop.Entry, int, error)
	StatsFunc         func(ctx context.Context) ([]airdrop.StatRow, error)
}

func (m *MockQueueStore) Insert(ctx context.Context, entry *airdrop.Entry) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, entry)
	}
	entry.ID = 1
	entry.Status = airdrop.StatusPending
	return nil
}

func (m *MockQueueStore) SelectPending(ctx context.Context, f airdropstore.PendingFilter) ([]*airdrop.Entry, error) {
	if m.SelectPendingFunc != nil {
		return m.SelectPendingFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockQueueStore) MarkSuccess(ctx context.Context, id int64, txHash string, at time.Time) (bool, error) {
	if m.MarkSuccessFunc != nil {
		return m.MarkSuccessFunc(ctx, id, txHash, at)
	}
	return true, nil
}

func (m *MockQueueStore) MarkFailed(ctx context.Context, id int64, at time.Time) (bool, error) {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, id, at)
	}
	return true, nil
}

func (m *MockQueueStore) List(ctx context.Context, status *airdrop.Status, limit, offset int) ([]*airdrop.Entry, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, limit, offset)
	}
	return nil, 0, nil
}

func (m *MockQueueStore) Stats(ctx context.Context) ([]airdrop.StatRow, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return nil, nil
}

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

// MockSender is a func-field mock implementation of token.Sender
type MockSender struct {
	SendFunc func(ctx context.Context, to string, amount decimal.Decimal) (string, error)
	Sends    int
}

func (m *MockSender) Send(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	m.Sends++
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, amount)
	}
	return "0xhash", nil
}
