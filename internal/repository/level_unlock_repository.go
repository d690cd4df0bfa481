package repository

import (
	"aula_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LevelUnlockRepository struct {
	DB *gorm.DB
}

func NewLevelUnlockRepository(db *gorm.DB) *LevelUnlockRepository {
	return &LevelUnlockRepository{DB: db}
}

// Ensure creates the unlock row if it does not exist yet. A single conditional
// insert against the (user_id, level) unique index, so two concurrent
// qualifying submissions resolve to exactly one row.
func (r *LevelUnlockRepository) Ensure(userID uint, level int) error {
	unlock := model.LevelUnlock{UserID: userID, Level: level}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "level"}},
		DoNothing: true,
	}).Create(&unlock).Error
}

func (r *LevelUnlockRepository) IsUnlocked(userID uint, level int) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LevelUnlock{}).
		Where("user_id = ? AND level = ?", userID, level).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LevelUnlockRepository) ListByUser(userID uint) ([]model.LevelUnlock, error) {
	var unlocks []model.LevelUnlock
	err := r.DB.Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocks).Error
	return unlocks, err
}

// DeleteExceptLevel removes every unlock row for the user other than the given
// level. Used to reset a freshly registered student to a clean slate.
func (r *LevelUnlockRepository) DeleteExceptLevel(userID uint, level int) error {
	return r.DB.Where("user_id = ? AND level <> ?", userID, level).
		Delete(&model.LevelUnlock{}).Error
}
