package dto

// LoginRequest represents login credentials for either role. Admins log in
// with a username, students with their roll number.
type LoginRequest struct {
	Role     string `json:"role" binding:"required,oneof=admin student"`
	Username string `json:"username"`
	RollNo   string `json:"rollNo"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse represents an issued session token
type SessionResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int    `json:"expiresIn"`
	Role      string `json:"role"`
}
