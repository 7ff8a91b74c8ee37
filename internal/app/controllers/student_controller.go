package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaan/markbook/internal/app/models/dto"
	"github.com/kaan/markbook/internal/app/services"
	"github.com/kaan/markbook/internal/middleware"
)

// StudentController serves student self-service routes. The student id
// always comes from the session, never from the request, so a student can
// only ever act on their own records.
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// Dashboard returns the authenticated student's profile, marks, and
// percentage.
func (c *StudentController) Dashboard(ctx *gin.Context) {
	studentID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	dashboard, err := c.studentService.Dashboard(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dashboard,
		Timestamp: time.Now(),
	})
}

// ChangePassword changes the authenticated student's password after
// verifying the old one.
func (c *StudentController) ChangePassword(ctx *gin.Context) {
	studentID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.studentService.ChangePassword(ctx.Request.Context(), studentID, req.OldPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NoticeResponse{Message: "Password changed"},
		Timestamp: time.Now(),
	})
}
