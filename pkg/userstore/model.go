package userstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/playchain/arcade-backend/pkg/user"
)

// UserDao is a data access object that maps directly to the 'users' table in PostgreSQL.
type UserDao struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64      `bun:"id,pk,autoincrement"`
	WalletAddress string     `bun:"wallet_address,unique,notnull,type:varchar(42)"`
	TelegramID    *string    `bun:"telegram_id,type:varchar(64)"`
	IsVerified    bool       `bun:"is_verified,notnull,default:false"`
	IsInstalled   bool       `bun:"is_installed,notnull,default:false"`
	Score         int64      `bun:"score,notnull,default:0"`
	Language      string     `bun:"language,notnull,type:varchar(8),default:'en'"`
	VerifiedAt    *time.Time `bun:"verified_at"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp"`
	LastLoginAt   *time.Time `bun:"last_login_at"`
	LastPlayedAt  *time.Time `bun:"last_played_at"`
}

// toUserDao converts a user.User to UserDao.
func toUserDao(usr *user.User) *UserDao {
	dao := &UserDao{
		ID:            usr.ID,
		WalletAddress: usr.WalletAddress,
		IsVerified:    usr.IsVerified,
		IsInstalled:   usr.IsInstalled,
		Score:         usr.Score,
		Language:      usr.Language,
	}

	if usr.TelegramID != "" {
		dao.TelegramID = &usr.TelegramID
	}
	if usr.VerifiedAt != nil {
		dao.VerifiedAt = usr.VerifiedAt
	}
	if usr.LastLoginAt != nil {
		dao.LastLoginAt = usr.LastLoginAt
	}
	if usr.LastPlayedAt != nil {
		dao.LastPlayedAt = usr.LastPlayedAt
	}

	return dao
}

// toUser converts a UserDao to user.User.
func toUser(dao *UserDao) *user.User {
	usr := &user.User{
		ID:            dao.ID,
		WalletAddress: dao.WalletAddress,
		IsVerified:    dao.IsVerified,
		IsInstalled:   dao.IsInstalled,
		Score:         dao.Score,
		Language:      dao.Language,
		CreatedAt:     dao.CreatedAt,
	}

	if dao.TelegramID != nil {
		usr.TelegramID = *dao.TelegramID
	}
	if dao.VerifiedAt != nil {
		usr.VerifiedAt = dao.VerifiedAt
	}
	if dao.LastLoginAt != nil {
		usr.LastLoginAt = dao.LastLoginAt
	}
	if dao.LastPlayedAt != nil {
		usr.LastPlayedAt = dao.LastPlayedAt
	}

	return usr
}
