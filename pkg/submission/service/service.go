// Package service implements game score submission and the streak bonus.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/playchain/arcade-backend/internal/metrics"
	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
	"github.com/playchain/arcade-backend/pkg/config"
	"github.com/playchain/arcade-backend/pkg/game"
	"github.com/playchain/arcade-backend/pkg/submission"
	"github.com/playchain/arcade-backend/pkg/user"
	"github.com/playchain/arcade-backend/pkg/userstore"
	"github.com/playchain/arcade-backend/pkg/validate"
)

// UserStore is the account lookup needed by the submission service.
type UserStore interface {
	GetUserByWallet(ctx context.Context, walletAddress string) (*user.User, error)
}

// GameStore persists round logs and credits scores.
type GameStore interface {
	SubmitResult(ctx context.Context, log *game.Log, at time.Time) (int64, error)
	RecentByUserAndType(ctx context.Context, userID int64, t game.Type, limit int) ([]*game.Log, error)
}

// Invalidator drops cached leaderboard pages after a score change.
// Implemented by the ranking service.
type Invalidator interface {
	InvalidateCache(patterns ...string) int
}

// Service defines the interface for the submission business logic
type Service interface {
	SubmitGame(ctx context.Context, walletAddress string, req *submission.SubmitRequest) (*submission.SubmitResponse, error)
}

type submitService struct {
	users       UserStore
	games       GameStore
	invalidator Invalidator
	cfg         *config.GameConfig
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new submission service
func NewService(users UserStore, games GameStore, invalidator Invalidator, cfg *config.GameConfig, logger *zap.Logger) Service {
	return &submitService{
		users:       users,
		games:       games,
		invalidator: invalidator,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *submitService) SubmitGame(ctx context.Context, walletAddress string, req *submission.SubmitRequest) (*submission.SubmitResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err, apperrors.CodeMissingRequiredFields,
			"gameType is required")
	}
	if !req.GameType.Valid() {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidInput,
			"unknown game type")
	}
	if !validate.ScoreInRange(req.Score, s.cfg.MinScore, s.cfg.MaxScore) {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidInput,
			"score is out of range")
	}

	usr, err := s.users.GetUserByWallet(ctx, validate.NormalizeWallet(walletAddress))
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			return nil, apperrors.NotFound(err, apperrors.CodeUserNotFound, "user not found")
		}
		return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError, "failed to look up user")
	}

	now := s.now()
	baseScore := int64(req.Score)

	streak, bonus, err := s.streakBonus(ctx, usr.ID, req)
	if err != nil {
		return nil, apperrors.Dependency(err, apperrors.CodeGameSubmissionFailed,
			"failed to compute streak bonus")
	}

	roundID := req.RoundID
	if roundID == "" {
		roundID = game.DefaultRoundID(now)
	}

	log := &game.Log{
		UserID:   usr.ID,
		Type:     req.GameType,
		RoundID:  roundID,
		Score:    baseScore + bonus,
		Result:   req.Result,
		Metadata: req.Metadata,
	}

	total, err := s.games.SubmitResult(ctx, log, now)
	if err != nil {
		metrics.GameSubmissions.WithLabelValues(string(req.GameType), "failed").Inc()
		return nil, apperrors.Dependency(err, apperrors.CodeGameSubmissionFailed,
			"failed to record game result")
	}
	metrics.GameSubmissions.WithLabelValues(string(req.GameType), "success").Inc()

	// Scores changed, so every cached leaderboard page is stale.
	s.invalidator.InvalidateCache()

	return &submission.SubmitResponse{
		Success:    true,
		GameType:   req.GameType,
		RoundID:    roundID,
		Score:      baseScore,
		Bonus:      bonus,
		Streak:     streak,
		TotalScore: total,
	}, nil
}

// streakBonus computes the prior-win streak and the bonus it earns.
// Only a winning prediction round earns one. The streak counts
// consecutive wins over the most recent prior rounds, breaking at the
// first non-win, so the current round is not part of the count and the
// first win after a loss earns no bonus.
func (s *submitService) streakBonus(ctx context.Context, userID int64, req *submission.SubmitRequest) (int, int64, error) {
	if req.GameType != game.TypePrediction {
		return 0, 0, nil
	}
	if !game.ParseResult(req.GameType, req.Result).IsWin() {
		return 0, 0, nil
	}

	recent, err := s.games.RecentByUserAndType(ctx, userID, game.TypePrediction, s.cfg.StreakWindow)
	if err != nil {
		return 0, 0, err
	}

	streak := 0
	for _, l := range recent {
		if !game.ParseResult(l.Type, l.Result).IsWin() {
			break
		}
		streak++
	}
	if streak == 0 {
		return 0, 0, nil
	}

	bonus := int64(streak * s.cfg.StreakBonusPerWin)
	if max := int64(s.cfg.StreakBonusMax); bonus > max {
		bonus = max
	}
	return streak, bonus, nil
}
