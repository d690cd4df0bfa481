package model

import (
	"encoding/json"
	"time"
)

// QuizAttempt is an append-only audit record of one quiz submission. Rows are
// never updated or deleted in normal flow; scores are stored exactly as
// submitted, without bounds checks.
type QuizAttempt struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"userId"`
	Level     int             `gorm:"default:1" json:"level"`
	Score     int             `gorm:"not null" json:"score"`
	Answers   json.RawMessage `gorm:"type:json" json:"answers"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
