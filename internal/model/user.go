package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User is the single account entity for every role. Role-specific fields are
// nullable: Alias is only set on student accounts, InstitutionalEmail only on
// teacher accounts. Username is the login identifier for both surfaces; for
// teachers it always mirrors InstitutionalEmail.
type User struct {
	BaseModel
	Username           string    `gorm:"size:150;unique;not null" json:"username"`
	Password           string    `gorm:"size:100;not null" json:"-"`
	Role               UserRole  `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	FirstName          string    `gorm:"size:150;not null" json:"firstName"`
	LastName           string    `gorm:"size:150;not null" json:"lastName"`
	Alias              *string   `gorm:"size:100" json:"alias,omitempty"`
	InstitutionalEmail *string   `gorm:"size:254;unique" json:"institutionalEmail,omitempty"`
	IsSuperuser        bool      `gorm:"default:false" json:"-"`
	LastLogin          time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`

	Attempts []QuizAttempt `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Unlocks  []LevelUnlock `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
