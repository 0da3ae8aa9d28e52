package service

import (
	"context"
	"time"

	"github.com/playchain/arcade-backend/pkg/user"
	"github.com/playchain/arcade-backend/pkg/userstore"
)

// MockStore is a func-field mock implementation of Store
type MockStore struct {
	GetUserByWalletFunc func(ctx context.Context, walletAddress string) (*user.User, error)
	CreateUserFunc      func(ctx context.Context, usr *user.User) error
	TouchLoginFunc      func(ctx context.Context, walletAddress string, at time.Time) error
	SetInstalledFunc    func(ctx context.Context, walletAddress, telegramID string) error
}

func (m *MockStore) GetUserByWallet(ctx context.Context, walletAddress string) (*user.User, error) {
	if m.GetUserByWalletFunc != nil {
		return m.GetUserByWalletFunc(ctx, walletAddress)
	}
	return nil, userstore.ErrUserNotFound
}

func (m *MockStore) CreateUser(ctx context.Context, usr *user.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, usr)
	}
	return nil
}

func (m *MockStore) TouchLogin(ctx context.Context, walletAddress string, at time.Time) error {
	if m.TouchLoginFunc != nil {
		return m.TouchLoginFunc(ctx, walletAddress, at)
	}
	return nil
}

func (m *MockStore) SetInstalled(ctx context.Context, walletAddress, telegramID string) error {
	if m.SetInstalledFunc != nil {
		return m.SetInstalledFunc(ctx, walletAddress, telegramID)
	}
	return nil
}
