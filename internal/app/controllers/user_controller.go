package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/app/models/dto"
	"github.com/emre/schoolhub/internal/app/services"
	"github.com/emre/schoolhub/internal/middleware"
)

// UserController handles profile operations for the authenticated account
type UserController struct {
	userRepo       services.UserStore
	studentService *services.StudentService
	teacherService *services.TeacherService
	logger         zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userRepo services.UserStore, studentService *services.StudentService, teacherService *services.TeacherService, logger zerolog.Logger) *UserController {
	return &UserController{
		userRepo:       userRepo,
		studentService: studentService,
		teacherService: teacherService,
		logger:         logger,
	}
}

// GetProfile returns the authenticated account and its owned record
// @Summary Get current profile
// @Description Returns the authenticated account along with its linked student or teacher record
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	principal, ok := middleware.RequirePrincipal(ctx)
	if !ok {
		return
	}

	user, err := c.userRepo.GetUserByUsername(ctx.Request.Context(), principal.Username)
	if err != nil {
		c.logger.Error().Err(err).Str("username", principal.Username).Msg("Failed to load profile account")
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.ProfileResponse{User: toUserResponse(user)}

	switch principal.Role {
	case models.RoleStudent:
		student, err := c.studentService.GetCurrentStudent(ctx.Request.Context(), principal)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		response.Student = student
	case models.RoleTeacher:
		teacher, err := c.teacherService.GetCurrentTeacher(ctx.Request.Context(), principal)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		response.Teacher = teacher
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response})
}
