package service

import (
	"aula_backend/internal/config"
	"aula_backend/internal/model"
	"aula_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
	}
}

func newAuthFixture() (*AuthService, *fakeUserStore, *fakeUnlockStore) {
	users := newFakeUserStore()
	unlocks := newFakeUnlockStore()
	return NewAuthService(users, unlocks, testConfig()), users, unlocks
}

func validStudentSignup() StudentSignup {
	return StudentSignup{
		FirstName:       "Ana",
		LastName:        "García",
		Password:        "p1",
		PasswordConfirm: "p1",
		Username:        "ana@x.com",
		Alias:           "Ana",
	}
}

func validTeacherSignup() TeacherSignup {
	return TeacherSignup{
		FirstName:          "Marta",
		LastName:           "Pérez",
		Password:           "p2",
		PasswordConfirm:    "p2",
		InstitutionalEmail: "prof@inst.edu.ar",
	}
}

func TestRegisterStudent(t *testing.T) {
	svc, users, _ := newAuthFixture()

	user, err := svc.RegisterStudent(validStudentSignup())
	require.NoError(t, err)

	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, "ana@x.com", user.Username)
	require.NotNil(t, user.Alias)
	assert.Equal(t, "Ana", *user.Alias)

	stored, err := users.FindByUsername("ana@x.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("p1")))
	assert.NotEqual(t, "p1", stored.Password)
}

func TestRegisterStudentPasswordMismatch(t *testing.T) {
	svc, users, _ := newAuthFixture()

	req := validStudentSignup()
	req.PasswordConfirm = "other"

	_, err := svc.RegisterStudent(req)
	assert.ErrorIs(t, err, util.ErrPasswordMismatch)

	_, err = users.FindByUsername("ana@x.com")
	assert.Error(t, err, "no account must be created on mismatch")
}

func TestRegisterStudentMissingFields(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RegisterStudent(StudentSignup{Password: "p1", PasswordConfirm: "p1"})
	fe, ok := util.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "first_name")
	assert.Contains(t, fe, "last_name")
	assert.Contains(t, fe, "username")
	assert.Contains(t, fe, "alias")
}

func TestRegisterStudentDuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RegisterStudent(validStudentSignup())
	require.NoError(t, err)

	_, err = svc.RegisterStudent(validStudentSignup())
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestRegisterStudentClearsStrayUnlocks(t *testing.T) {
	svc, _, unlocks := newAuthFixture()

	// Stray rows for the id the new account is going to get.
	require.NoError(t, unlocks.Ensure(1, 1))
	require.NoError(t, unlocks.Ensure(1, 2))
	require.NoError(t, unlocks.Ensure(1, 3))

	user, err := svc.RegisterStudent(validStudentSignup())
	require.NoError(t, err)
	require.Equal(t, uint(1), user.ID)

	assert.Equal(t, 1, unlocks.count(1, 1), "level 1 row survives")
	assert.Equal(t, 0, unlocks.count(1, 2))
	assert.Equal(t, 0, unlocks.count(1, 3))
}

func TestRegisterStudentCleanupFailureIsNonFatal(t *testing.T) {
	svc, users, unlocks := newAuthFixture()
	unlocks.cleanupErr = assert.AnError

	user, err := svc.RegisterStudent(validStudentSignup())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = users.FindByUsername("ana@x.com")
	assert.NoError(t, err)
}

func TestRegisterTeacher(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.RegisterTeacher(validTeacherSignup())
	require.NoError(t, err)

	assert.Equal(t, model.Teacher, user.Role)
	assert.Equal(t, "prof@inst.edu.ar", user.Username, "login identifier mirrors institutional email")
	require.NotNil(t, user.InstitutionalEmail)
	assert.Equal(t, "prof@inst.edu.ar", *user.InstitutionalEmail)
	assert.Nil(t, user.Alias)
}

func TestRegisterTeacherRejectsForeignDomain(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := validTeacherSignup()
	req.InstitutionalEmail = "prof@gmail.com"

	_, err := svc.RegisterTeacher(req)
	assert.ErrorIs(t, err, util.ErrInvalidInstitutionalDomain)
}

func TestRegisterTeacherDuplicateInstitutionalEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RegisterTeacher(validTeacherSignup())
	require.NoError(t, err)

	_, err = svc.RegisterTeacher(validTeacherSignup())
	assert.ErrorIs(t, err, util.ErrInstitutionalEmailTaken)
}

func TestRegisterTeacherPasswordMismatch(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := validTeacherSignup()
	req.PasswordConfirm = "nope"

	_, err := svc.RegisterTeacher(req)
	assert.ErrorIs(t, err, util.ErrPasswordMismatch)
}

func TestLoginRoleGate(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RegisterStudent(validStudentSignup())
	require.NoError(t, err)

	// Correct credentials through the wrong gate must look exactly like a
	// wrong password.
	_, _, err = svc.Login("ana@x.com", "p1", model.Teacher)
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	token, user, err := svc.Login("ana@x.com", "p1", model.Student)
	require.NoError(t, err)
	assert.Equal(t, model.Student, user.Role)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RegisterStudent(validStudentSignup())
	require.NoError(t, err)

	_, _, err = svc.Login("ana@x.com", "wrong", model.Student)
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@x.com", "p1", model.Student)
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
