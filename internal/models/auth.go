package models

// LoginRequest is the admin login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StatusResponse is the uniform success/message envelope used by the auth
// and health endpoints
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
