// Package service implements payout queueing and batch execution.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/playchain/arcade-backend/internal/metrics"
	"github.com/playchain/arcade-backend/pkg/airdrop"
	"github.com/playchain/arcade-backend/pkg/airdropstore"
	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
	"github.com/playchain/arcade-backend/pkg/config"
	"github.com/playchain/arcade-backend/pkg/token"
	"github.com/playchain/arcade-backend/pkg/user"
	"github.com/playchain/arcade-backend/pkg/userstore"
	"github.com/playchain/arcade-backend/pkg/validate"
)

// UserStore is the account lookup needed by the airdrop service.
type UserStore interface {
	GetUserByWallet(ctx context.Context, walletAddress string) (*user.User, error)
}

// Service defines the interface for the airdrop business logic
type Service interface {
	AddToQueue(ctx context.Context, req *airdrop.QueueRequest) (*airdrop.QueueResponse, error)
	ExecuteAirdrop(ctx context.Context, req *airdrop.ExecuteRequest) (*airdrop.ExecuteResponse, error)
	GetQueue(ctx context.Context, status *airdrop.Status, limit, offset int) (*airdrop.ListResponse, error)
	GetStats(ctx context.Context) (*airdrop.StatsResponse, error)
}

type airdropService struct {
	store  airdropstore.Store
	users  UserStore
	sender token.Sender
	cfg    *config.AirdropConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new airdrop service
func NewService(store airdropstore.Store, users UserStore, sender token.Sender, cfg *config.AirdropConfig, logger *zap.Logger) Service {
	return &airdropService{
		store:  store,
		users:  users,
		sender: sender,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// AddToQueue records one pending payout for a wallet.
func (s *airdropService) AddToQueue(ctx context.Context, req *airdrop.QueueRequest) (*airdrop.QueueResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err, apperrors.CodeMissingRequiredFields,
			"walletAddress, rewardType and amount are required")
	}
	if !validate.WalletAddress(req.WalletAddress) {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidWalletAddress,
			"wallet address must be a 0x-prefixed 40-hex-char string")
	}
	if !req.RewardType.Valid() {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidInput,
			"unknown reward type")
	}
	if req.Amount.Sign() <= 0 {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidInput,
			"amount must be positive")
	}

	wallet := validate.NormalizeWallet(req.WalletAddress)
	usr, err := s.users.GetUserByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			return nil, apperrors.NotFound(err, apperrors.CodeUserNotFound, "user not found")
		}
		return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError, "failed to look up user")
	}

	entry := &airdrop.Entry{
		UserID:        usr.ID,
		WalletAddress: wallet,
		RewardType:    req.RewardType,
		Amount:        req.Amount,
		Description:   req.Description,
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return nil, apperrors.Dependency(err, apperrors.CodeAirdropQueueFailed,
			"failed to queue airdrop entry")
	}

	return &airdrop.QueueResponse{
		Success: true,
		Entry:   airdrop.ToEntryInfo(entry),
	}, nil
}

// ExecuteAirdrop settles a batch of pending entries. Entries are
// processed sequentially; a transfer failure marks that entry failed
// and the batch continues. Marking is guarded by the pending status so
// an entry can never be paid twice even if two runs race.
func (s *airdropService) ExecuteAirdrop(ctx context.Context, req *airdrop.ExecuteRequest) (*airdrop.ExecuteResponse, error) {
	if req.RewardType != nil && !req.RewardType.Valid() {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidInput,
			"unknown reward type")
	}

	pending, err := s.store.SelectPending(ctx, airdropstore.PendingFilter{
		IDs:        req.IDs,
		RewardType: req.RewardType,
		MaxAmount:  req.MaxAmount,
		Limit:      s.cfg.BatchSize,
	})
	if err != nil {
		return nil, apperrors.Dependency(err, apperrors.CodeAirdropExecFailed,
			"failed to select pending entries")
	}

	resp := &airdrop.ExecuteResponse{
		Success:     true,
		BatchID:     uuid.NewString(),
		TotalAmount: decimal.Zero,
		DryRun:      req.DryRun,
		Items:       make([]airdrop.ExecutedItem, 0, len(pending)),
	}

	for _, entry := range pending {
		item := airdrop.ExecutedItem{
			ID:            entry.ID,
			WalletAddress: entry.WalletAddress,
			Amount:        entry.Amount,
		}

		if req.DryRun {
			item.Status = airdrop.StatusPending
			resp.Processed++
			resp.TotalAmount = resp.TotalAmount.Add(entry.Amount)
			resp.Items = append(resp.Items, item)
			continue
		}

		txHash, sendErr := s.sender.Send(ctx, entry.WalletAddress, entry.Amount)
		if sendErr != nil {
			s.logger.Error("airdrop transfer failed",
				zap.Int64("entry_id", entry.ID),
				zap.String("wallet_address", entry.WalletAddress),
				zap.String("amount", entry.Amount.String()),
				zap.Error(sendErr),
			)
			metrics.AirdropTransfers.WithLabelValues("failed").Inc()

			if _, markErr := s.store.MarkFailed(ctx, entry.ID, s.now()); markErr != nil {
				s.logger.Error("failed to mark entry failed",
					zap.Int64("entry_id", entry.ID), zap.Error(markErr))
			}
			item.Status = airdrop.StatusFailed
			item.Error = sendErr.Error()
			resp.Failed++
			resp.Items = append(resp.Items, item)
			continue
		}

		settled, markErr := s.store.MarkSuccess(ctx, entry.ID, txHash, s.now())
		if markErr != nil {
			return nil, apperrors.Dependency(markErr, apperrors.CodeAirdropExecFailed,
				"failed to record transfer result")
		}
		if !settled {
			// Another run settled this entry between select and send.
			s.logger.Warn("entry already settled, skipping",
				zap.Int64("entry_id", entry.ID))
			continue
		}

		metrics.AirdropTransfers.WithLabelValues("success").Inc()
		item.Status = airdrop.StatusSuccess
		item.TxHash = txHash
		resp.Processed++
		resp.TotalAmount = resp.TotalAmount.Add(entry.Amount)
		resp.Items = append(resp.Items, item)
	}

	return resp, nil
}

// GetQueue pages the payout queue, optionally filtered by status.
func (s *airdropService) GetQueue(ctx context.Context, status *airdrop.Status, limit, offset int) (*airdrop.ListResponse, error) {
	limit = validate.ClampLimit(limit, s.cfg.BatchSize, 200)
	offset = validate.ClampOffset(offset)

	entries, total, err := s.store.List(ctx, status, limit, offset)
	if err != nil {
		return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError,
			"failed to list airdrop queue")
	}

	infos := make([]*airdrop.EntryInfo, len(entries))
	for i, e := range entries {
		infos[i] = airdrop.ToEntryInfo(e)
	}

	return &airdrop.ListResponse{
		Success: true,
		Entries: infos,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// GetStats returns the grouped queue statistics.
func (s *airdropService) GetStats(ctx context.Context) (*airdrop.StatsResponse, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError,
			"failed to compute queue stats")
	}

	pendingCount := 0
	for _, row := range stats {
		if row.Status == airdrop.StatusPending {
			pendingCount += row.Count
		}
	}
	metrics.AirdropQueuePending.Set(float64(pendingCount))

	return &airdrop.StatsResponse{
		Success: true,
		Stats:   stats,
	}, nil
}
