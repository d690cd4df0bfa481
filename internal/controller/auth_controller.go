package controller

import (
	"aula_backend/internal/model"
	"aula_backend/internal/service"
	"aula_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	studentLoginFailedMsg = "El correo o la contraseña son incorrectos. Inténtalo de nuevo."
	teacherLoginFailedMsg = "El Correo Institucional o la contraseña son incorrectos. Inténtalo de nuevo."
)

type AuthController struct {
	AuthService     *service.AuthService
	ProgressService *service.ProgressService
}

func NewAuthController(authService *service.AuthService, progressService *service.ProgressService) *AuthController {
	return &AuthController{
		AuthService:     authService,
		ProgressService: progressService,
	}
}

// StudentRegisterRequest defines the student registration form.
type StudentRegisterRequest struct {
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Username        string `form:"username" json:"username"`
	Alias           string `form:"alias" json:"alias"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm"`
}

// TeacherRegisterRequest defines the teacher registration form. No username
// field: the institutional email becomes the login identifier.
type TeacherRegisterRequest struct {
	FirstName          string `form:"first_name" json:"first_name"`
	LastName           string `form:"last_name" json:"last_name"`
	InstitutionalEmail string `form:"institutional_email" json:"institutional_email"`
	Password           string `form:"password" json:"password"`
	PasswordConfirm    string `form:"password_confirm" json:"password_confirm"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterStudent godoc
// @Summary Registro de estudiante
// @Accept json
// @Produce json
// @Router /api/auth/student/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req StudentRegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.RegisterStudent(service.StudentSignup{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Username:        req.Username,
		Alias:           req.Alias,
	})
	if err != nil {
		renderRegistrationError(ctx, err)
		return
	}

	c.issueSession(ctx, user)
}

// RegisterTeacher godoc
// @Summary Registro de profesor
// @Accept json
// @Produce json
// @Router /api/auth/teacher/register [post]
func (c *AuthController) RegisterTeacher(ctx *gin.Context) {
	var req TeacherRegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.RegisterTeacher(service.TeacherSignup{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Password:           req.Password,
		PasswordConfirm:    req.PasswordConfirm,
		InstitutionalEmail: req.InstitutionalEmail,
	})
	if err != nil {
		renderRegistrationError(ctx, err)
		return
	}

	c.issueSession(ctx, user)
}

// LoginStudent godoc
// @Summary Login de estudiante
// @Accept json
// @Produce json
// @Router /api/auth/student/login [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	c.login(ctx, model.Student, studentLoginFailedMsg)
}

// LoginTeacher godoc
// @Summary Login de profesor
// @Accept json
// @Produce json
// @Router /api/auth/teacher/login [post]
func (c *AuthController) LoginTeacher(ctx *gin.Context) {
	c.login(ctx, model.Teacher, teacherLoginFailedMsg)
}

// login is the shared verification path behind both surfaces; only the
// failure message differs per gate.
func (c *AuthController) login(ctx *gin.Context, gate model.UserRole, failedMsg string) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Username, req.Password, gate)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, failedMsg)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  c.profilePayload(ctx, user),
	})
}

// GetProfile godoc
// @Summary Perfil del usuario autenticado
// @Produce json
// @Security ApiKeyAuth
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.profilePayload(ctx, user))
}

func (c *AuthController) profilePayload(ctx *gin.Context, user *model.User) gin.H {
	profile := gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}

	switch user.Role {
	case model.Student:
		if user.Alias != nil {
			profile["alias"] = *user.Alias
		}
		// The level menu is gated on this flag.
		profile["unlockedLevel2"] = c.ProgressService.IsLevelUnlocked(
			ctx.Request.Context(), user.ID, util.UnlockedLevel)
	case model.Teacher:
		if user.InstitutionalEmail != nil {
			profile["institutionalEmail"] = *user.InstitutionalEmail
		}
	}

	return profile
}

func (c *AuthController) issueSession(ctx *gin.Context, user *model.User) {
	token, err := util.GenerateJWT(user, c.AuthService.Cfg.JWT.Secret, c.AuthService.Cfg.JWT.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"token": token,
		"user":  c.profilePayload(ctx, user),
	})
}

func renderRegistrationError(ctx *gin.Context, err error) {
	if fe, ok := util.AsFieldErrors(err); ok {
		util.ValidationFailed(ctx, fe)
		return
	}

	switch {
	case errors.Is(err, util.ErrPasswordMismatch):
		util.ValidationFailed(ctx, util.FieldErrors{"password_confirm": err.Error()})
	case errors.Is(err, util.ErrInvalidInstitutionalDomain):
		util.ValidationFailed(ctx, util.FieldErrors{"institutional_email": err.Error()})
	case errors.Is(err, util.ErrUsernameTaken):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrInstitutionalEmailTaken):
		util.Error(ctx, http.StatusConflict, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
