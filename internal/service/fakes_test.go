package service

import (
	"aula_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

// In-memory stand-ins for the gorm repositories.

type fakeUserStore struct {
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[uint]*model.User{}}
}

func (f *fakeUserStore) Create(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) FindByID(id uint) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByInstitutionalEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.InstitutionalEmail != nil && *u.InstitutionalEmail == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) Update(user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(userID uint) error {
	if _, ok := f.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type fakeAttemptStore struct {
	nextID   uint
	attempts []model.QuizAttempt
	failNext bool
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{nextID: 1}
}

func (f *fakeAttemptStore) Create(attempt *model.QuizAttempt) error {
	if f.failNext {
		f.failNext = false
		return errors.New("attempt insert failed")
	}
	attempt.ID = f.nextID
	f.nextID++
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptStore) ListByUser(userID uint) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for i := len(f.attempts) - 1; i >= 0; i-- {
		if f.attempts[i].UserID == userID {
			out = append(out, f.attempts[i])
		}
	}
	return out, nil
}

type unlockKey struct {
	userID uint
	level  int
}

type fakeUnlockStore struct {
	nextID     uint
	unlocks    map[unlockKey]model.LevelUnlock
	ensureErr  error
	lookupErr  error
	cleanupErr error
}

func newFakeUnlockStore() *fakeUnlockStore {
	return &fakeUnlockStore{nextID: 1, unlocks: map[unlockKey]model.LevelUnlock{}}
}

func (f *fakeUnlockStore) Ensure(userID uint, level int) error {
	if f.ensureErr != nil {
		return f.ensureErr
	}
	key := unlockKey{userID: userID, level: level}
	if _, ok := f.unlocks[key]; ok {
		return nil
	}
	f.unlocks[key] = model.LevelUnlock{ID: f.nextID, UserID: userID, Level: level}
	f.nextID++
	return nil
}

func (f *fakeUnlockStore) IsUnlocked(userID uint, level int) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	_, ok := f.unlocks[unlockKey{userID: userID, level: level}]
	return ok, nil
}

func (f *fakeUnlockStore) ListByUser(userID uint) ([]model.LevelUnlock, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	var out []model.LevelUnlock
	for _, u := range f.unlocks {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUnlockStore) DeleteExceptLevel(userID uint, level int) error {
	if f.cleanupErr != nil {
		return f.cleanupErr
	}
	for key := range f.unlocks {
		if key.userID == userID && key.level != level {
			delete(f.unlocks, key)
		}
	}
	return nil
}

func (f *fakeUnlockStore) count(userID uint, level int) int {
	if _, ok := f.unlocks[unlockKey{userID: userID, level: level}]; ok {
		return 1
	}
	return 0
}
