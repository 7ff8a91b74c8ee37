package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/markbook/internal/app/models"
)

// MarkRepository handles database operations for marks
type MarkRepository struct {
	db *pgxpool.Pool
}

// NewMarkRepository creates a new mark repository
func NewMarkRepository(db *pgxpool.Pool) *MarkRepository {
	return &MarkRepository{db: db}
}

// Upsert saves a mark for a (student, subject) pair. The
// marks_student_subject_key constraint guarantees at most one row per pair;
// a second save overwrites the score in place.
func (r *MarkRepository) Upsert(ctx context.Context, mark *models.Mark) error {
	query := `
		INSERT INTO marks (student_id, subject_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT marks_student_subject_key
		DO UPDATE SET score = EXCLUDED.score
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, mark.StudentID, mark.SubjectID, mark.Score).Scan(&mark.ID)
	if err != nil {
		return fmt.Errorf("error saving mark: %w", err)
	}

	return nil
}

// ListByStudent retrieves a student's marks with subject details attached,
// ordered by subject name.
func (r *MarkRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Mark, error) {
	query := `
		SELECT m.id, m.student_id, m.subject_id, m.score, s.id, s.name
		FROM marks m
		JOIN subjects s ON s.id = m.subject_id
		WHERE m.student_id = $1
		ORDER BY s.name ASC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []*models.Mark
	for rows.Next() {
		var mark models.Mark
		var subject models.Subject
		if err := rows.Scan(
			&mark.ID,
			&mark.StudentID,
			&mark.SubjectID,
			&mark.Score,
			&subject.ID,
			&subject.Name,
		); err != nil {
			return nil, err
		}
		mark.Subject = &subject
		marks = append(marks, &mark)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return marks, nil
}

// GetAll retrieves every mark row
func (r *MarkRepository) GetAll(ctx context.Context) ([]*models.Mark, error) {
	query := `
		SELECT id, student_id, subject_id, score
		FROM marks
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []*models.Mark
	for rows.Next() {
		var mark models.Mark
		if err := rows.Scan(&mark.ID, &mark.StudentID, &mark.SubjectID, &mark.Score); err != nil {
			return nil, err
		}
		marks = append(marks, &mark)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return marks, nil
}

// CountByStudent returns the number of marks recorded for a student
func (r *MarkRepository) CountByStudent(ctx context.Context, studentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM marks WHERE student_id = $1`, studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting marks: %w", err)
	}
	return count, nil
}

// DeleteByStudentTx deletes all marks referencing a student within an
// existing transaction.
func (r *MarkRepository) DeleteByStudentTx(ctx context.Context, tx pgx.Tx, studentID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM marks WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("error deleting marks for student: %w", err)
	}
	return nil
}

// DeleteBySubjectTx deletes all marks referencing a subject within an
// existing transaction.
func (r *MarkRepository) DeleteBySubjectTx(ctx context.Context, tx pgx.Tx, subjectID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM marks WHERE subject_id = $1`, subjectID); err != nil {
		return fmt.Errorf("error deleting marks for subject: %w", err)
	}
	return nil
}
