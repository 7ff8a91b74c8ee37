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

// SubjectRepository handles database operations for the subject catalog
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create inserts a new subject. Name uniqueness is enforced by the
// subjects_name_key constraint.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, subject.Name).Scan(&subject.ID)
	if err != nil {
		if dberrors.IsUniqueViolationOn(err, "subjects_name_key") {
			return apperrors.ErrSubjectExists
		}
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// GetByID retrieves a subject by id
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(&subject.ID, &subject.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// GetAll retrieves all subjects in catalog (name) order. The CSV export
// depends on this ordering being stable.
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	query := `
		SELECT id, name
		FROM subjects
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// DeleteTx deletes a subject row within an existing transaction. Dependent
// mark rows must be deleted first (MarkRepository.DeleteBySubjectTx).
func (r *SubjectRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
