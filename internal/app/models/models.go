// Package models defines the database entities of the application.
package models

// Role determines which operations a session may invoke.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// Admin defines the administrator model based on the 'admins' table
type Admin struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"` // Hashed password (excluded from JSON)
}

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64  `json:"id" db:"id"`
	RollNo       string `json:"rollNo" db:"roll_no"` // Stable human-facing identifier, unique
	Name         string `json:"name" db:"name"`
	FatherName   string `json:"fatherName" db:"father_name"`
	DateOfBirth  string `json:"dateOfBirth" db:"date_of_birth"`
	ClassName    string `json:"className" db:"class_name"`
	Image        string `json:"image,omitempty" db:"image"` // Stored image reference, empty when none
	PasswordHash string `json:"-" db:"password_hash"`
}

// Subject defines the subject model based on the 'subjects' table
type Subject struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"` // Unique catalog name
}

// Mark is a single student-subject score entry. At most one row exists per
// (StudentID, SubjectID) pair; saving again overwrites the score.
type Mark struct {
	ID        int64   `json:"id" db:"id"`
	StudentID int64   `json:"studentId" db:"student_id"`
	SubjectID int64   `json:"subjectId" db:"subject_id"`
	Score     float64 `json:"score" db:"score"`

	// Relations (populated when needed)
	Subject *Subject `json:"subject,omitempty"`
}
