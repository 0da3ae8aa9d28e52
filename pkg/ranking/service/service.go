// Package service implements the cached, admission-controlled leaderboard.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/playchain/arcade-backend/internal/metrics"
	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
	"github.com/playchain/arcade-backend/pkg/cache"
	"github.com/playchain/arcade-backend/pkg/config"
	"github.com/playchain/arcade-backend/pkg/game"
	"github.com/playchain/arcade-backend/pkg/limiter"
	"github.com/playchain/arcade-backend/pkg/ranking"
	"github.com/playchain/arcade-backend/pkg/rankstore"
	"github.com/playchain/arcade-backend/pkg/validate"
)

const (
	topCountDefault = 10
	topCountMax     = 20
)

// Params narrows a leaderboard page request.
type Params struct {
	GameType     string
	Language     string
	VerifiedOnly bool
	Limit        int
	Offset       int
}

// TopParams narrows a top-of-board request.
type TopParams struct {
	Count        int
	Language     string
	VerifiedOnly bool
}

// Service defines the interface for the leaderboard business logic
type Service interface {
	GetRanking(ctx context.Context, p Params) (*ranking.Response, error)
	GetTopRanking(ctx context.Context, p TopParams) (*ranking.TopResponse, error)
	GetUserRanking(ctx context.Context, walletAddress string) (*ranking.UserResponse, error)
	InvalidateCache(patterns ...string) int
}

type rankService struct {
	store  rankstore.Store
	cfg    *config.RankingConfig
	logger *zap.Logger

	pages *cache.Cache[*ranking.Response]
	top   *cache.Cache[*ranking.TopResponse]
	users *cache.Cache[*ranking.UserResponse]
	gate  *limiter.Gate
}

// NewService creates a new leaderboard service
func NewService(store rankstore.Store, cfg *config.RankingConfig, logger *zap.Logger) Service {
	return &rankService{
		store:  store,
		cfg:    cfg,
		logger: logger,
		pages:  cache.New[*ranking.Response](cfg.CacheTTL),
		top:    cache.New[*ranking.TopResponse](cfg.TopCacheTTL),
		users:  cache.New[*ranking.UserResponse](cfg.UserCacheTTL),
		gate:   limiter.New(cfg.MaxConcurrent),
	}
}

// GetRanking returns one leaderboard page, from cache when fresh. A
// cache miss recomputes under the admission gate; when the gate is at
// its ceiling the request fails fast with SERVER_BUSY instead of
// queueing behind other recomputations.
func (s *rankService) GetRanking(ctx context.Context, p Params) (*ranking.Response, error) {
	if p.GameType != "" && !game.Type(p.GameType).Valid() {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidInput, "unknown game type")
	}
	if !validate.LanguageSupported(p.Language, s.cfg.Languages) {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidInput, "unsupported language")
	}

	limit := validate.ClampLimit(p.Limit, s.cfg.DefaultLimit, s.cfg.MaxLimit)
	offset := validate.ClampOffset(p.Offset)

	key := pageKey(p.GameType, p.Language, p.VerifiedOnly, limit, offset)
	if resp, ok := s.pages.Get(key); ok {
		metrics.RankingCacheHits.WithLabelValues("pages").Inc()
		return cachedCopy(resp), nil
	}
	metrics.RankingCacheMisses.WithLabelValues("pages").Inc()

	resp, err := limiter.Do(s.gate, key, func() (*ranking.Response, error) {
		return s.computePage(ctx, p, limit, offset)
	})
	if err != nil {
		if errors.Is(err, limiter.ErrBusy) {
			metrics.RankingBusyRejections.Inc()
			return nil, apperrors.Busy(err)
		}
		return nil, apperrors.Dependency(err, apperrors.CodeRankingFetchFailed,
			"failed to compute leaderboard")
	}

	s.pages.Set(key, resp)
	return resp, nil
}

func (s *rankService) computePage(ctx context.Context, p Params, limit, offset int) (*ranking.Response, error) {
	q := rankstore.Query{
		VerifiedOnly: p.VerifiedOnly,
		MinScore:     int64(s.cfg.MinScore),
		Limit:        limit,
		Offset:       offset,
	}
	if p.Language != "" {
		q.Language = &p.Language
	}

	var (
		page  *rankstore.Page
		err   error
		board = "overall"
	)
	start := time.Now()
	if p.GameType != "" {
		t := game.Type(p.GameType)
		q.GameType = &t
		board = p.GameType
		page, err = s.store.GamePage(ctx, q)
	} else {
		page, err = s.store.OverallPage(ctx, q)
	}
	metrics.RankingQueryDuration.WithLabelValues(board).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	return &ranking.Response{
		Success: true,
		Ranking: s.toEntries(page.Rows),
		Filters: ranking.Filters{
			GameType:     p.GameType,
			Language:     p.Language,
			VerifiedOnly: p.VerifiedOnly,
		},
		Pagination: ranking.Pagination{
			Total:   page.Total,
			Limit:   limit,
			Offset:  offset,
			HasMore: page.Total > offset+limit,
		},
		GeneratedAt: time.Now(),
	}, nil
}

// GetTopRanking returns the head of the overall board with aggregate
// stats, both scoped by the same language and verification filters.
func (s *rankService) GetTopRanking(ctx context.Context, p TopParams) (*ranking.TopResponse, error) {
	if !validate.LanguageSupported(p.Language, s.cfg.Languages) {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidInput, "unsupported language")
	}
	count := validate.ClampLimit(p.Count, topCountDefault, topCountMax)

	key := topKey(count, p.Language, p.VerifiedOnly)
	if resp, ok := s.top.Get(key); ok {
		metrics.RankingCacheHits.WithLabelValues("top").Inc()
		copied := *resp
		copied.Cached = true
		return &copied, nil
	}
	metrics.RankingCacheMisses.WithLabelValues("top").Inc()

	resp, err := limiter.Do(s.gate, key, func() (*ranking.TopResponse, error) {
		q := rankstore.Query{
			VerifiedOnly: p.VerifiedOnly,
			MinScore:     int64(s.cfg.MinScore),
			Limit:        count,
		}
		if p.Language != "" {
			q.Language = &p.Language
		}
		start := time.Now()
		page, err := s.store.OverallPage(ctx, q)
		if err != nil {
			return nil, err
		}
		stats, err := s.store.TopStats(ctx, q)
		metrics.RankingQueryDuration.WithLabelValues("top").Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}

		return &ranking.TopResponse{
			Success:     true,
			Entries:     s.toEntries(page.Rows),
			Stats:       stats,
			GeneratedAt: time.Now(),
		}, nil
	})
	if err != nil {
		if errors.Is(err, limiter.ErrBusy) {
			metrics.RankingBusyRejections.Inc()
			return nil, apperrors.Busy(err)
		}
		return nil, apperrors.Dependency(err, apperrors.CodeRankingFetchFailed,
			"failed to compute top leaderboard")
	}

	s.top.Set(key, resp)
	return resp, nil
}

// GetUserRanking returns one wallet's board position.
func (s *rankService) GetUserRanking(ctx context.Context, walletAddress string) (*ranking.UserResponse, error) {
	if !validate.WalletAddress(walletAddress) {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidWalletAddress,
			"wallet address must be a 0x-prefixed 40-hex-char string")
	}
	wallet := validate.NormalizeWallet(walletAddress)

	key := "userrank:" + wallet
	if resp, ok := s.users.Get(key); ok {
		metrics.RankingCacheHits.WithLabelValues("users").Inc()
		copied := *resp
		copied.Cached = true
		return &copied, nil
	}
	metrics.RankingCacheMisses.WithLabelValues("users").Inc()

	ranks, err := s.store.UserRanks(ctx, wallet, int64(s.cfg.MinScore))
	if err != nil {
		if errors.Is(err, rankstore.ErrUserNotRanked) {
			return nil, apperrors.NotFound(err, apperrors.CodeUserNotFound, "user not found")
		}
		return nil, apperrors.Dependency(err, apperrors.CodeRankingFetchFailed,
			"failed to compute user rank")
	}

	resp := &ranking.UserResponse{
		Success:         true,
		User:            ranks,
		AirdropEligible: ranks.OverallRank <= s.cfg.AirdropTopN,
		GeneratedAt:     time.Now(),
	}
	s.users.Set(key, resp)
	return resp, nil
}

// InvalidateCache drops cached leaderboard entries. With no patterns
// every cache is cleared; otherwise entries whose key contains any of
// the given substrings are removed. Returns the number of entries
// dropped (zero when clearing everything).
func (s *rankService) InvalidateCache(patterns ...string) int {
	if len(patterns) == 0 {
		s.pages.Clear()
		s.top.Clear()
		s.users.Clear()
		return 0
	}

	removed := s.pages.DeleteMatching(patterns...)
	removed += s.top.DeleteMatching(patterns...)
	removed += s.users.DeleteMatching(patterns...)
	return removed
}

func (s *rankService) toEntries(rows []rankstore.Row) []ranking.Entry {
	entries := make([]ranking.Entry, len(rows))
	for i, row := range rows {
		entries[i] = ranking.Entry{
			Row:             row,
			AirdropEligible: row.Rank <= s.cfg.AirdropTopN,
		}
	}
	return entries
}

// cachedCopy returns a shallow copy flagged as cache-served so the
// stored entry itself is never mutated.
func cachedCopy(resp *ranking.Response) *ranking.Response {
	copied := *resp
	copied.Cached = true
	return &copied
}

func pageKey(gameType, language string, verifiedOnly bool, limit, offset int) string {
	if gameType == "" {
		gameType = "all"
	}
	if language == "" {
		language = "all"
	}
	return fmt.Sprintf("ranking:%s:%s:%t:%d:%d", gameType, language, verifiedOnly, limit, offset)
}

func topKey(count int, language string, verifiedOnly bool) string {
	if language == "" {
		language = "all"
	}
	return fmt.Sprintf("top:%d:%s:%t", count, language, verifiedOnly)
}
