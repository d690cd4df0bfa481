package service

import (
	"aula_backend/internal/model"
	"aula_backend/internal/util"
	"aula_backend/pkg/logger"
	"aula_backend/pkg/monitoring"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"
)

// QuizSubmission is the coercible quiz payload. Score and Level are pointers
// so an absent field can be told apart from an explicit zero; both default
// exactly as the frontend has always relied on (score 0, level 1). Scores are
// not clamped: negative or oversized values are persisted as-is.
type QuizSubmission struct {
	Score   *int            `json:"score"`
	Level   *int            `json:"level"`
	Answers json.RawMessage `json:"answers"`
}

type QuizService struct {
	Attempts AttemptStore
	Unlocks  UnlockStore
}

func NewQuizService(attempts AttemptStore, unlocks UnlockStore) *QuizService {
	return &QuizService{
		Attempts: attempts,
		Unlocks:  unlocks,
	}
}

// SubmitAttempt records the attempt unconditionally, then tries the level-2
// unlock when the score qualifies. The unlock is a secondary write: its
// failure is logged and swallowed so the already-committed attempt is always
// acknowledged.
func (s *QuizService) SubmitAttempt(userID uint, sub QuizSubmission) (*model.QuizAttempt, error) {
	score := 0
	if sub.Score != nil {
		score = *sub.Score
	}
	level := 1
	if sub.Level != nil {
		level = *sub.Level
	}
	answers := sub.Answers
	if len(answers) == 0 {
		answers = json.RawMessage("{}")
	}

	attempt := &model.QuizAttempt{
		UserID:  userID,
		Level:   level,
		Score:   score,
		Answers: answers,
	}

	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}

	qualified := score > util.UnlockScoreThreshold
	if qualified {
		if err := s.Unlocks.Ensure(userID, util.UnlockedLevel); err != nil {
			logger.Log.Warn("level unlock write failed",
				zap.Uint("userID", userID),
				zap.Int("level", util.UnlockedLevel),
				zap.Error(err),
			)
		}
	}
	monitoring.QuizAttemptCounter.WithLabelValues(strconv.FormatBool(qualified)).Inc()

	return attempt, nil
}

func (s *QuizService) ListAttempts(userID uint) ([]model.QuizAttempt, error) {
	return s.Attempts.ListByUser(userID)
}
