package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrStudentNotFound = errors.New("student not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrRollNoExists    = errors.New("roll number already exists")
	ErrSubjectExists   = errors.New("subject already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidScore     = errors.New("invalid score")
	ErrInvalidImageType = errors.New("unsupported image type")
)
