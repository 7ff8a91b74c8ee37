// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/app/models/dto"
	"github.com/kaan/markbook/internal/app/services"
	"github.com/kaan/markbook/internal/middleware"
	"github.com/kaan/markbook/internal/pkg/auth"
)

// AuthController handles login and logout for both roles
type AuthController struct {
	authService *services.AuthService
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates an admin (username) or a student (roll number) and
// issues a session token, returned in the body and set as a cookie.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	var (
		role   models.Role
		userID int64
	)

	switch req.Role {
	case "admin":
		if req.Username == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Username is required for admin login").WithField("username")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		admin, err := c.authService.LoginAdmin(ctx.Request.Context(), req.Username, req.Password)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		role, userID = models.RoleAdmin, admin.ID

	case "student":
		if req.RollNo == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Roll number is required for student login").WithField("rollNo")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		student, err := c.authService.LoginStudent(ctx.Request.Context(), req.RollNo, req.Password)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		role, userID = models.RoleStudent, student.ID
	}

	token, expiresIn, err := c.jwtService.GenerateSessionToken(role, userID)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to issue session token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(auth.SessionCookieName, token, expiresIn, "/", "", false, true)

	c.logger.Info().Str("role", string(role)).Int64("userID", userID).Msg("Login successful")
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SessionResponse{
			Token:     token,
			TokenType: "Bearer",
			ExpiresIn: expiresIn,
			Role:      string(role),
		},
		Timestamp: time.Now(),
	})
}

// Logout clears the session cookie.
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NoticeResponse{Message: "Logged out"},
		Timestamp: time.Now(),
	})
}
