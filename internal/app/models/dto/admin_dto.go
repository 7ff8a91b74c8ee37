package dto

import "github.com/kaan/markbook/internal/app/models"

// AddStudentRequest is the multipart form payload for creating a student.
// The image part is read separately from the form.
type AddStudentRequest struct {
	RollNo      string `form:"roll_no" binding:"required"`
	Name        string `form:"name" binding:"required"`
	FatherName  string `form:"father_name"`
	DateOfBirth string `form:"dob"`
	ClassName   string `form:"class_name"`
	Password    string `form:"password"`
}

// AddSubjectRequest creates a catalog subject
type AddSubjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// SaveMarkRequest upserts a mark. Score arrives as a string and must parse
// to a finite number; non-numeric input is rejected without touching the
// store.
type SaveMarkRequest struct {
	StudentID int64  `json:"studentId" binding:"required,min=1"`
	SubjectID int64  `json:"subjectId" binding:"required,min=1"`
	Score     string `json:"score" binding:"required"`
}

// AdminDashboardResponse is the admin overview: full roster, catalog, and
// all recorded marks.
type AdminDashboardResponse struct {
	Students []*models.Student `json:"students"`
	Subjects []*models.Subject `json:"subjects"`
	Marks    []*models.Mark    `json:"marks"`
}
