// Package repositories contains the data access layer over pgx.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	AdminRepository   *AdminRepository
	StudentRepository *StudentRepository
	SubjectRepository *SubjectRepository
	MarkRepository    *MarkRepository
}

// NewRepositories creates all repositories sharing a single pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminRepository:   NewAdminRepository(db),
		StudentRepository: NewStudentRepository(db),
		SubjectRepository: NewSubjectRepository(db),
		MarkRepository:    NewMarkRepository(db),
	}
}
