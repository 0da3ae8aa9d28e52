package rankstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the leaderboard store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// userFilter renders the WHERE fragments shared by the board queries.
func userFilter(q Query, alias string) (string, []any) {
	clauses := []string{fmt.Sprintf("%s.score >= ?", alias)}
	args := []any{q.MinScore}

	if q.VerifiedOnly {
		clauses = append(clauses, fmt.Sprintf("%s.is_verified = TRUE", alias))
	}
	if q.Language != nil && *q.Language != "" {
		clauses = append(clauses, fmt.Sprintf("%s.language = ?", alias))
		args = append(args, *q.Language)
	}

	return strings.Join(clauses, " AND "), args
}

func (s *pgStore) OverallPage(ctx context.Context, q Query) (*Page, error) {
	where, args := userFilter(q, "u")

	var rows []Row
	selectArgs := append(append([]any{}, args...), q.Limit, q.Offset)
	err := s.db.NewRaw(
		`SELECT u.id AS user_id, u.wallet_address, u.score, u.language,
		        u.created_at, u.last_played_at,
		        (SELECT COUNT(*) FROM game_logs g WHERE g.user_id = u.id) AS game_count
		 FROM users u
		 WHERE `+where+`
		 ORDER BY u.score DESC, u.created_at ASC
		 LIMIT ? OFFSET ?`,
		selectArgs...,
	).Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall ranking: %w", err)
	}

	// Overall ranks are positional within the full ordering, so ties
	// still receive distinct consecutive ranks.
	for i := range rows {
		rows[i].Rank = q.Offset + i + 1
	}

	var total int
	err = s.db.NewRaw(
		`SELECT COUNT(*) FROM users u WHERE `+where,
		args...,
	).Scan(ctx, &total)
	if err != nil {
		return nil, fmt.Errorf("failed to count overall ranking: %w", err)
	}

	return &Page{Rows: rows, Total: total}, nil
}

func (s *pgStore) GamePage(ctx context.Context, q Query) (*Page, error) {
	if q.GameType == nil {
		return nil, errors.New("game type is required for per-game ranking")
	}

	clauses := []string{"g.game_type = ?"}
	args := []any{string(*q.GameType)}
	if q.VerifiedOnly {
		clauses = append(clauses, "u.is_verified = TRUE")
	}
	if q.Language != nil && *q.Language != "" {
		clauses = append(clauses, "u.language = ?")
		args = append(args, *q.Language)
	}
	where := strings.Join(clauses, " AND ")

	grouped := `SELECT u.id AS user_id, u.wallet_address, u.language,
	                   u.created_at, u.last_played_at,
	                   SUM(g.score) AS score, COUNT(g.id) AS game_count,
	                   RANK() OVER (ORDER BY SUM(g.score) DESC, u.created_at ASC) AS rank
	            FROM users u
	            JOIN game_logs g ON g.user_id = u.id
	            WHERE ` + where + `
	            GROUP BY u.id
	            HAVING SUM(g.score) > 0 AND SUM(g.score) >= ?`

	var rows []Row
	selectArgs := append(append([]any{}, args...), q.MinScore, q.Limit, q.Offset)
	err := s.db.NewRaw(
		`SELECT * FROM (`+grouped+`) ranked ORDER BY rank ASC, user_id ASC LIMIT ? OFFSET ?`,
		selectArgs...,
	).Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query game ranking: %w", err)
	}

	var total int
	countArgs := append(append([]any{}, args...), q.MinScore)
	err = s.db.NewRaw(
		`SELECT COUNT(*) FROM (`+grouped+`) ranked`,
		countArgs...,
	).Scan(ctx, &total)
	if err != nil {
		return nil, fmt.Errorf("failed to count game ranking: %w", err)
	}

	return &Page{Rows: rows, Total: total}, nil
}

func (s *pgStore) TopStats(ctx context.Context, q Query) (*TopStats, error) {
	where, args := userFilter(q, "u")

	stats := new(TopStats)
	err := s.db.NewRaw(
		`SELECT COUNT(*) AS total_players,
		        COALESCE(ROUND(AVG(u.score)), 0) AS average_score,
		        COALESCE(MAX(u.score), 0) AS highest_score
		 FROM users u WHERE `+where,
		args...,
	).Scan(ctx, stats)
	if err != nil {
		return nil, fmt.Errorf("failed to query board stats: %w", err)
	}

	err = s.db.NewRaw(
		`SELECT DISTINCT u.language FROM users u WHERE `+where+` ORDER BY u.language`,
		args...,
	).Scan(ctx, &stats.Languages)
	if err != nil {
		return nil, fmt.Errorf("failed to query board languages: %w", err)
	}

	return stats, nil
}

func (s *pgStore) UserRanks(ctx context.Context, walletAddress string, minScore int64) (*UserRanks, error) {
	ranks := new(UserRanks)
	err := s.db.NewRaw(
		`SELECT id AS user_id, wallet_address, score, language, last_played_at
		 FROM users WHERE wallet_address = ?`,
		walletAddress,
	).Scan(ctx, &ranks.UserID, &ranks.WalletAddress, &ranks.Score, &ranks.Language, &ranks.LastPlayedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotRanked
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Rank is one plus the number of verified users ordered strictly
	// ahead, using the same score DESC, created_at ASC ordering as the
	// board so a user's rank matches their board position.
	const aheadExpr = `is_verified = TRUE AND score >= ? AND (score > ? OR (score = ? AND created_at < (SELECT created_at FROM users WHERE wallet_address = ?)))`

	err = s.db.NewRaw(
		`SELECT COUNT(*) + 1 FROM users WHERE `+aheadExpr,
		minScore, ranks.Score, ranks.Score, walletAddress,
	).Scan(ctx, &ranks.OverallRank)
	if err != nil {
		return nil, fmt.Errorf("failed to compute overall rank: %w", err)
	}

	err = s.db.NewRaw(
		`SELECT COUNT(*) + 1 FROM users WHERE language = ? AND `+aheadExpr,
		ranks.Language, minScore, ranks.Score, ranks.Score, walletAddress,
	).Scan(ctx, &ranks.LanguageRank)
	if err != nil {
		return nil, fmt.Errorf("failed to compute language rank: %w", err)
	}

	return ranks, nil
}
