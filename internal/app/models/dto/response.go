package dto

import "time"

// APIResponse is the standard success envelope
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NoticeResponse carries a user-visible notice for operations without a
// meaningful payload.
type NoticeResponse struct {
	Message string `json:"message"`
}
