package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kaan/markbook/internal/app/models/dto"
	"github.com/kaan/markbook/internal/app/repositories"
	"github.com/kaan/markbook/internal/pkg/apperrors"
	"github.com/kaan/markbook/internal/pkg/auth"
)

// StudentService implements student self-service. Every operation is scoped
// to the authenticated student's own id; there is no way to reach another
// student's records through it.
type StudentService struct {
	studentRepo *repositories.StudentRepository
	markRepo    *repositories.MarkRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo *repositories.StudentRepository, markRepo *repositories.MarkRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		markRepo:    markRepo,
		logger:      logger,
	}
}

// Dashboard returns the student's profile, marks, and computed percentage.
func (s *StudentService) Dashboard(ctx context.Context, studentID int64) (*dto.StudentDashboardResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	marks, err := s.markRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing marks: %w", err)
	}

	scores := make([]float64, 0, len(marks))
	for _, m := range marks {
		scores = append(scores, m.Score)
	}

	return &dto.StudentDashboardResponse{
		Student:    student,
		Marks:      marks,
		Percentage: ComputePercentage(scores),
	}, nil
}

// ChangePassword verifies the old password before storing a hash of the new
// one. A wrong old password fails with ErrWrongOldPassword and leaves the
// record untouched.
func (s *StudentService) ChangePassword(ctx context.Context, studentID int64, oldPassword, newPassword string) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(student.PasswordHash, oldPassword) {
		return apperrors.ErrWrongOldPassword
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.studentRepo.UpdatePassword(ctx, studentID, newHash); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Msg("Student password changed")
	return nil
}

// ComputePercentage computes the average score assuming each subject is
// scored out of 100. Returns nil when there are no scores, so a student
// without marks gets "no percentage" rather than a division by zero.
func ComputePercentage(scores []float64) *float64 {
	if len(scores) == 0 {
		return nil
	}

	var total float64
	for _, score := range scores {
		total += score
	}

	percentage := total / (float64(len(scores)) * 100) * 100
	return &percentage
}
