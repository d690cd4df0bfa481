package service

import (
	"aula_backend/internal/config"
	"aula_backend/internal/model"
	"aula_backend/internal/util"
	"aula_backend/pkg/logger"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StudentSignup carries the raw fields of the student registration form.
type StudentSignup struct {
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
	Username        string
	Alias           string
}

// TeacherSignup carries the raw fields of the teacher registration form. The
// login username is not submitted; it is derived from the institutional email.
type TeacherSignup struct {
	FirstName          string
	LastName           string
	Password           string
	PasswordConfirm    string
	InstitutionalEmail string
}

type AuthService struct {
	Users   UserStore
	Unlocks UnlockStore
	Cfg     *config.Config
}

func NewAuthService(users UserStore, unlocks UnlockStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users:   users,
		Unlocks: unlocks,
		Cfg:     cfg,
	}
}

func validateCommon(firstName, lastName, password, passwordConfirm string) util.FieldErrors {
	fe := util.FieldErrors{}
	if strings.TrimSpace(firstName) == "" {
		fe["first_name"] = "este campo es obligatorio"
	}
	if strings.TrimSpace(lastName) == "" {
		fe["last_name"] = "este campo es obligatorio"
	}
	if password == "" {
		fe["password"] = "este campo es obligatorio"
	}
	if passwordConfirm == "" {
		fe["password_confirm"] = "este campo es obligatorio"
	}
	return fe
}

// RegisterStudent validates the student form and creates the account.
// Validation order mirrors the form: required fields, password confirmation,
// then username uniqueness.
func (s *AuthService) RegisterStudent(req StudentSignup) (*model.User, error) {
	fe := validateCommon(req.FirstName, req.LastName, req.Password, req.PasswordConfirm)
	if strings.TrimSpace(req.Username) == "" {
		fe["username"] = "este campo es obligatorio"
	}
	if strings.TrimSpace(req.Alias) == "" {
		fe["alias"] = "este campo es obligatorio"
	}
	if len(fe) > 0 {
		return nil, fe
	}

	if req.Password != req.PasswordConfirm {
		return nil, util.ErrPasswordMismatch
	}

	if _, err := s.Users.FindByUsername(req.Username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	alias := req.Alias
	user := &model.User{
		Username:  req.Username,
		Password:  string(hashed),
		Role:      model.Student,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Alias:     &alias,
	}

	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	// A brand new student must only have level 1 available. Clearing stray
	// unlock rows is best effort and never aborts the registration.
	if err := s.Unlocks.DeleteExceptLevel(user.ID, 1); err != nil {
		logger.Log.Warn("post-registration unlock cleanup failed",
			zap.Uint("userID", user.ID),
			zap.Error(err),
		)
	}

	return user, nil
}

// RegisterTeacher validates the teacher form and creates the account. The
// institutional email doubles as the login username.
func (s *AuthService) RegisterTeacher(req TeacherSignup) (*model.User, error) {
	fe := validateCommon(req.FirstName, req.LastName, req.Password, req.PasswordConfirm)
	if strings.TrimSpace(req.InstitutionalEmail) == "" {
		fe["institutional_email"] = "este campo es obligatorio"
	}
	if len(fe) > 0 {
		return nil, fe
	}

	if req.Password != req.PasswordConfirm {
		return nil, util.ErrPasswordMismatch
	}

	if !strings.HasSuffix(req.InstitutionalEmail, util.InstitutionalSuffix) {
		return nil, util.ErrInvalidInstitutionalDomain
	}

	if _, err := s.Users.FindByInstitutionalEmail(req.InstitutionalEmail); err == nil {
		return nil, util.ErrInstitutionalEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	email := req.InstitutionalEmail
	user := &model.User{
		Username:           email,
		Password:           string(hashed),
		Role:               model.Teacher,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		InstitutionalEmail: &email,
	}

	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials against one role gate. An unknown username, a
// wrong password and a role mismatch all collapse into ErrInvalidCredentials
// so the response never reveals which check failed.
func (s *AuthService) Login(username, password string, gate model.UserRole) (string, *model.User, error) {
	user, err := s.Users.FindByUsername(username)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if user.Role != gate {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := s.Users.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("last login update failed", zap.Uint("userID", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.Users.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
