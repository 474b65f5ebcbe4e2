package dto

import dom "minifeed/internal/domain"

// LoginRequest is the body for POST /auth/login (JSON or form).
type LoginRequest struct {
	Name       string `json:"name" form:"name" binding:"required"`
	Credential string `json:"credential" form:"credential" binding:"required"`
}

// RegisterRequest is the body for POST /auth/register (JSON or form).
type RegisterRequest struct {
	Name       string `json:"name" form:"name" binding:"required,min=1,max=120"`
	Credential string `json:"credential" form:"credential" binding:"required,min=1"`
}

// UserResponse is returned when user info is needed (e.g. after login).
type UserResponse struct {
	ID   dom.UserID `json:"id"`
	Name string     `json:"name"`
}

// AuthResponse wraps the user after register or login.
type AuthResponse struct {
	OK   bool         `json:"ok"`
	User UserResponse `json:"user"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
