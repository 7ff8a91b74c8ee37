package dto

import "github.com/kaan/markbook/internal/app/models"

// StudentDashboardResponse is the student's own view: profile, marks with
// subject names, and the computed percentage. Percentage is null when the
// student has no marks yet.
type StudentDashboardResponse struct {
	Student    *models.Student `json:"student"`
	Marks      []*models.Mark  `json:"marks"`
	Percentage *float64        `json:"percentage"`
}

// ChangePasswordRequest changes the student's own password after verifying
// the old one.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
