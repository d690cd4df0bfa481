package service

import "aula_backend/internal/model"

// Storage interfaces consumed by the services. The gorm repositories in
// internal/repository satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByInstitutionalEmail(email string) (*model.User, error)
	Update(user *model.User) error
	UpdateLastLogin(userID uint) error
}

type AttemptStore interface {
	Create(attempt *model.QuizAttempt) error
	ListByUser(userID uint) ([]model.QuizAttempt, error)
}

type UnlockStore interface {
	Ensure(userID uint, level int) error
	IsUnlocked(userID uint, level int) (bool, error)
	ListByUser(userID uint) ([]model.LevelUnlock, error)
	DeleteExceptLevel(userID uint, level int) error
}
