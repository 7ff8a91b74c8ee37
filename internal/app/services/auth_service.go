// Package services implements the application's business operations on top
// of the repositories.
package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/app/repositories"
	"github.com/kaan/markbook/internal/pkg/apperrors"
	"github.com/kaan/markbook/internal/pkg/auth"
)

// AuthService authenticates admins and students against their stored
// credentials.
type AuthService struct {
	adminRepo   *repositories.AdminRepository
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(adminRepo *repositories.AdminRepository, studentRepo *repositories.StudentRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{
		adminRepo:   adminRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// LoginAdmin verifies an administrator's credentials. A missing account and
// a wrong password both return ErrInvalidCredentials.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error looking up admin: %w", err)
	}

	if admin == nil || !auth.CheckPassword(admin.PasswordHash, password) {
		s.logger.Warn().Str("username", username).Msg("Failed admin login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return admin, nil
}

// LoginStudent verifies a student's credentials by roll number.
func (s *AuthService) LoginStudent(ctx context.Context, rollNo, password string) (*models.Student, error) {
	student, err := s.studentRepo.GetByRollNo(ctx, rollNo)
	if err != nil {
		return nil, fmt.Errorf("error looking up student: %w", err)
	}

	if student == nil || !auth.CheckPassword(student.PasswordHash, password) {
		s.logger.Warn().Str("rollNo", rollNo).Msg("Failed student login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return student, nil
}
