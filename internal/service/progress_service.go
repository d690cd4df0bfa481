package service

import (
	"aula_backend/internal/model"
	"aula_backend/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const unlockCacheTTL = 24 * time.Hour

// ProgressService answers the read side of level unlocking. Lookups fail
// closed: any storage problem (redis down, unlock table not migrated yet)
// reports the level as locked instead of breaking navigation.
type ProgressService struct {
	Unlocks UnlockStore
	Redis   *redis.Client
}

func NewProgressService(unlocks UnlockStore, rdb *redis.Client) *ProgressService {
	return &ProgressService{
		Unlocks: unlocks,
		Redis:   rdb,
	}
}

func unlockCacheKey(userID uint, level int) string {
	return fmt.Sprintf("unlock:%d:%d", userID, level)
}

// IsLevelUnlocked reports whether the user may enter the level. Level 1 is
// always open. Positive results are cached in redis; an unlock is
// irreversible, so cached positives never need invalidation.
func (s *ProgressService) IsLevelUnlocked(ctx context.Context, userID uint, level int) bool {
	if level <= 1 {
		return true
	}

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, unlockCacheKey(userID, level)).Result()
		if err == nil && val == "1" {
			return true
		}
	}

	unlocked, err := s.Unlocks.IsUnlocked(userID, level)
	if err != nil {
		logger.Log.Warn("unlock lookup failed, treating level as locked",
			zap.Uint("userID", userID),
			zap.Int("level", level),
			zap.Error(err),
		)
		return false
	}

	if unlocked && s.Redis != nil {
		if err := s.Redis.Set(ctx, unlockCacheKey(userID, level), "1", unlockCacheTTL).Err(); err != nil {
			logger.Log.Debug("unlock cache write failed", zap.Error(err))
		}
	}

	return unlocked
}

// UnlockedLevels lists the user's unlock records, newest first.
func (s *ProgressService) UnlockedLevels(userID uint) ([]model.LevelUnlock, error) {
	return s.Unlocks.ListByUser(userID)
}
