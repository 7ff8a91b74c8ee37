package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaan/markbook/internal/app/models/dto"
	"github.com/kaan/markbook/internal/app/services"
	"github.com/kaan/markbook/internal/middleware"
)

// AdminController handles roster, catalog, mark, and export operations.
// Every route it serves sits behind the ADMIN role gate.
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// Dashboard returns the full roster, subject catalog, and all marks.
func (c *AdminController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.adminService.Dashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dashboard,
		Timestamp: time.Now(),
	})
}

// AddStudent creates a student from a multipart form, with an optional
// profile image part named "image".
func (c *AdminController) AddStudent(ctx *gin.Context) {
	var req dto.AddStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// Image is optional; a missing part is not an error.
	image, err := ctx.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid image upload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.adminService.AddStudent(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// DeleteStudent removes a student together with its marks and stored image.
func (c *AdminController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NoticeResponse{Message: "Student removed"},
		Timestamp: time.Now(),
	})
}

// AddSubject creates a catalog subject.
func (c *AdminController) AddSubject(ctx *gin.Context) {
	var req dto.AddSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	subject, err := c.adminService.AddSubject(ctx.Request.Context(), req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      subject,
		Timestamp: time.Now(),
	})
}

// DeleteSubject removes a subject together with all marks referencing it.
func (c *AdminController) DeleteSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteSubject(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NoticeResponse{Message: "Subject removed"},
		Timestamp: time.Now(),
	})
}

// SaveMark upserts a score for a (student, subject) pair.
func (c *AdminController) SaveMark(ctx *gin.Context) {
	var req dto.SaveMarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	mark, err := c.adminService.SaveMark(ctx.Request.Context(), req.StudentID, req.SubjectID, req.Score)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      mark,
		Timestamp: time.Now(),
	})
}

// ExportCSV streams the marks summary as a CSV attachment.
func (c *AdminController) ExportCSV(ctx *gin.Context) {
	data, err := c.adminService.ExportMarksCSV(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="marks_export.csv"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}

// parseIDParam parses a numeric path parameter, responding with 400 itself
// when the value is not a valid id.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
