package controller

import (
	"aula_backend/internal/service"
	"aula_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService     *service.QuizService
	ProgressService *service.ProgressService
}

func NewQuizController(quizService *service.QuizService, progressService *service.ProgressService) *QuizController {
	return &QuizController{
		QuizService:     quizService,
		ProgressService: progressService,
	}
}

// SubmitQuiz godoc
// @Summary Guardar resultado de quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/quiz/attempts [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var sub service.QuizSubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, "Invalid JSON")
		return
	}

	attempt, err := c.QuizService.SubmitAttempt(claims.UserID, sub)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"ok":        true,
		"attemptId": attempt.ID,
	})
}

// ListAttempts godoc
// @Summary Historial de intentos del usuario
// @Produce json
// @Security ApiKeyAuth
// @Router /api/quiz/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.QuizService.ListAttempts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// LevelStatus godoc
// @Summary Estado de desbloqueo de un nivel
// @Produce json
// @Security ApiKeyAuth
// @Router /api/levels/{level}/status [get]
func (c *QuizController) LevelStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	level, err := strconv.Atoi(ctx.Param("level"))
	if err != nil || level < 1 {
		util.BadRequest(ctx, "invalid level")
		return
	}

	unlocked := c.ProgressService.IsLevelUnlocked(ctx.Request.Context(), claims.UserID, level)
	util.Success(ctx, gin.H{
		"level":    level,
		"unlocked": unlocked,
	})
}
