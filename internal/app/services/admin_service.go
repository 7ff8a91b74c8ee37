package services

import (
	"context"
	"fmt"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/app/models/dto"
	"github.com/kaan/markbook/internal/app/repositories"
	"github.com/kaan/markbook/internal/db"
	"github.com/kaan/markbook/internal/pkg/apperrors"
	"github.com/kaan/markbook/internal/pkg/auth"
	"github.com/kaan/markbook/internal/pkg/filestorage"
)

// DefaultStudentPassword is assigned when an admin creates a student
// without supplying one.
const DefaultStudentPassword = "password123"

// AdminService implements the administrator operations: roster and catalog
// management, mark upserts, and the CSV export.
type AdminService struct {
	pool        *pgxpool.Pool
	studentRepo *repositories.StudentRepository
	subjectRepo *repositories.SubjectRepository
	markRepo    *repositories.MarkRepository
	storage     filestorage.ImageStorage
	logger      zerolog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	pool *pgxpool.Pool,
	studentRepo *repositories.StudentRepository,
	subjectRepo *repositories.SubjectRepository,
	markRepo *repositories.MarkRepository,
	storage filestorage.ImageStorage,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		pool:        pool,
		studentRepo: studentRepo,
		subjectRepo: subjectRepo,
		markRepo:    markRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Dashboard returns the full roster, catalog, and all marks.
func (s *AdminService) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}

	marks, err := s.markRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing marks: %w", err)
	}

	return &dto.AdminDashboardResponse{
		Students: students,
		Subjects: subjects,
		Marks:    marks,
	}, nil
}

// AddStudent creates a student record, storing the optional profile image
// first. A duplicate roll number fails with ErrRollNoExists; the stored
// image is cleaned up again in that case.
func (s *AdminService) AddStudent(ctx context.Context, req *dto.AddStudentRequest, image *multipart.FileHeader) (*models.Student, error) {
	password := req.Password
	if password == "" {
		password = DefaultStudentPassword
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	imageRef := ""
	if image != nil {
		imageRef, err = s.storage.SaveImage(image, req.RollNo)
		if err != nil {
			return nil, err
		}
	}

	student := &models.Student{
		RollNo:       strings.TrimSpace(req.RollNo),
		Name:         req.Name,
		FatherName:   req.FatherName,
		DateOfBirth:  req.DateOfBirth,
		ClassName:    req.ClassName,
		Image:        imageRef,
		PasswordHash: passwordHash,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if imageRef != "" {
			if rmErr := s.storage.DeleteImage(imageRef); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("image", imageRef).Msg("Failed to clean up image after insert failure")
			}
		}
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("rollNo", student.RollNo).Msg("Student added")
	return student, nil
}

// DeleteStudent removes a student and every mark referencing it in a single
// transaction, then makes a best-effort attempt to remove the stored image.
// Image removal failure is logged and swallowed; it must not block record
// deletion.
func (s *AdminService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.markRepo.DeleteByStudentTx(ctx, tx, id); err != nil {
			return err
		}
		return s.studentRepo.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if student.Image != "" {
		if rmErr := s.storage.DeleteImage(student.Image); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("image", student.Image).Msg("Failed to remove student image")
		}
	}

	s.logger.Info().Int64("studentID", id).Str("rollNo", student.RollNo).Msg("Student removed")
	return nil
}

// AddSubject creates a catalog subject.
func (s *AdminService) AddSubject(ctx context.Context, name string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name cannot be empty", apperrors.ErrValidationFailed)
	}

	subject := &models.Subject{Name: name}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectID", subject.ID).Str("name", subject.Name).Msg("Subject added")
	return subject, nil
}

// DeleteSubject removes a subject and every mark referencing it in a single
// transaction.
func (s *AdminService) DeleteSubject(ctx context.Context, id int64) error {
	if _, err := s.subjectRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.markRepo.DeleteBySubjectTx(ctx, tx, id); err != nil {
			return err
		}
		return s.subjectRepo.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("subjectID", id).Msg("Subject removed")
	return nil
}

// SaveMark upserts a score for a (student, subject) pair. The score must
// parse to a finite number; invalid input is rejected before any write.
func (s *AdminService) SaveMark(ctx context.Context, studentID, subjectID int64, score string) (*models.Mark, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidScore, score)
	}

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	mark := &models.Mark{
		StudentID: studentID,
		SubjectID: subjectID,
		Score:     value,
	}
	if err := s.markRepo.Upsert(ctx, mark); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("subjectID", subjectID).Float64("score", value).Msg("Mark saved")
	return mark, nil
}

// ExportMarksCSV renders the marks summary as CSV: a header with the
// subject catalog in name order, then one row per student ascending by
// roll number.
func (s *AdminService) ExportMarksCSV(ctx context.Context) ([]byte, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}

	marks, err := s.markRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing marks: %w", err)
	}

	return BuildMarksCSV(students, subjects, marks)
}
