// Package routes wires controllers to the Gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kaan/markbook/internal/app/controllers"
	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// --- Admin routes (ADMIN role required) ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.SessionAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/dashboard", adminController.Dashboard)
		admin.POST("/students", adminController.AddStudent)
		admin.DELETE("/students/:id", adminController.DeleteStudent)
		admin.POST("/subjects", adminController.AddSubject)
		admin.DELETE("/subjects/:id", adminController.DeleteSubject)
		admin.PUT("/marks", adminController.SaveMark)
		admin.GET("/export", adminController.ExportCSV)
	}

	// --- Student self-service routes (STUDENT role required) ---
	student := v1.Group("/student")
	student.Use(authMiddleware.SessionAuth(), authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/dashboard", studentController.Dashboard)
		student.POST("/password", studentController.ChangePassword)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
