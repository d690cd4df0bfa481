package controller

import (
	"aula_backend/internal/model"
	"aula_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Minimal in-memory stores backing the services under test.

type memUserStore struct {
	nextID uint
	users  map[uint]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: map[uint]*model.User{}}
}

func (f *memUserStore) Create(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *memUserStore) FindByID(id uint) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *memUserStore) FindByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *memUserStore) FindByInstitutionalEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.InstitutionalEmail != nil && *u.InstitutionalEmail == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *memUserStore) Update(user *model.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *memUserStore) UpdateLastLogin(userID uint) error { return nil }

type memAttemptStore struct {
	nextID   uint
	attempts []model.QuizAttempt
}

func newMemAttemptStore() *memAttemptStore {
	return &memAttemptStore{nextID: 1}
}

func (f *memAttemptStore) Create(attempt *model.QuizAttempt) error {
	attempt.ID = f.nextID
	f.nextID++
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *memAttemptStore) ListByUser(userID uint) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for i := len(f.attempts) - 1; i >= 0; i-- {
		if f.attempts[i].UserID == userID {
			out = append(out, f.attempts[i])
		}
	}
	return out, nil
}

type memUnlockKey struct {
	userID uint
	level  int
}

type memUnlockStore struct {
	nextID  uint
	unlocks map[memUnlockKey]model.LevelUnlock
}

func newMemUnlockStore() *memUnlockStore {
	return &memUnlockStore{nextID: 1, unlocks: map[memUnlockKey]model.LevelUnlock{}}
}

func (f *memUnlockStore) Ensure(userID uint, level int) error {
	key := memUnlockKey{userID: userID, level: level}
	if _, ok := f.unlocks[key]; ok {
		return nil
	}
	f.unlocks[key] = model.LevelUnlock{ID: f.nextID, UserID: userID, Level: level}
	f.nextID++
	return nil
}

func (f *memUnlockStore) IsUnlocked(userID uint, level int) (bool, error) {
	_, ok := f.unlocks[memUnlockKey{userID: userID, level: level}]
	return ok, nil
}

func (f *memUnlockStore) ListByUser(userID uint) ([]model.LevelUnlock, error) {
	var out []model.LevelUnlock
	for _, u := range f.unlocks {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *memUnlockStore) DeleteExceptLevel(userID uint, level int) error {
	for key := range f.unlocks {
		if key.userID == userID && key.level != level {
			delete(f.unlocks, key)
		}
	}
	return nil
}

// asUser injects parsed claims the way the auth middleware would.
func asUser(userID uint, role model.UserRole, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: userID, Role: role, Username: username})
		c.Next()
	}
}
