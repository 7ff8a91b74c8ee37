package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/pkg/apperrors"
	"github.com/kaan/markbook/internal/pkg/dberrors"
)

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student. Roll number uniqueness is enforced by the
// students_roll_no_key constraint, not by a check-then-insert sequence, so
// concurrent admins cannot race a duplicate in.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (roll_no, name, father_name, date_of_birth, class_name, image, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.RollNo,
		student.Name,
		student.FatherName,
		student.DateOfBirth,
		student.ClassName,
		student.Image,
		student.PasswordHash,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsUniqueViolationOn(err, "students_roll_no_key") {
			return apperrors.ErrRollNoExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by internal id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByRollNo retrieves a student by roll number. Returns (nil, nil) when
// no such student exists.
func (r *StudentRepository) GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	student, err := r.getOne(ctx, `WHERE roll_no = $1`, rollNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return student, nil
}

func (r *StudentRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Student, error) {
	query := `
		SELECT id, roll_no, name, father_name, date_of_birth, class_name, image, password_hash
		FROM students ` + where

	var student models.Student
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&student.ID,
		&student.RollNo,
		&student.Name,
		&student.FatherName,
		&student.DateOfBirth,
		&student.ClassName,
		&student.Image,
		&student.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students ordered by roll number ascending
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, roll_no, name, father_name, date_of_birth, class_name, image, password_hash
		FROM students
		ORDER BY roll_no ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.RollNo,
			&student.Name,
			&student.FatherName,
			&student.DateOfBirth,
			&student.ClassName,
			&student.Image,
			&student.PasswordHash,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// DeleteTx deletes a student row within an existing transaction. Dependent
// mark rows must be deleted first (MarkRepository.DeleteByStudentTx).
func (r *StudentRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdatePassword replaces a student's password hash
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating student password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
