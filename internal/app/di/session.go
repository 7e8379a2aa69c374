package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "stock_buddy/internal/feature/auth/adapters"
	"stock_buddy/internal/feature/auth/usecase"
	"stock_buddy/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to MySQL.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionMySQL(db)
}
