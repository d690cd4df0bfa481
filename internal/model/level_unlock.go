package model

import "time"

// LevelUnlock marks a game level as permanently unlocked for a user. The
// composite unique index is the only guard against duplicate unlock rows under
// concurrent qualifying submissions, so creation must go through a single
// conditional insert.
type LevelUnlock struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_level" json:"userId"`
	Level      int       `gorm:"not null;uniqueIndex:idx_user_level" json:"level"`
	UnlockedAt time.Time `gorm:"autoCreateTime" json:"unlockedAt"`
}

func (LevelUnlock) TableName() string {
	return "level_unlocks"
}
