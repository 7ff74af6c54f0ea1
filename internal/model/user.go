package model

import "time"

// User is a workspace-scoped staff identity as returned by GET /api/auth/me.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Nome            string    `json:"nome"`
	Empresa         string    `json:"empresa"`
	WorkspaceStatus string    `json:"workspaceStatus,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RegisterRequest represents a staff registration request.
type RegisterRequest struct {
	Nome    string `json:"nome" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Senha   string `json:"senha" validate:"required"`
	Empresa string `json:"empresa" validate:"omitempty,max=100"`
}

// LoginRequest represents a staff login request.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// AuthResponse is the payload of register and login. The backend may omit the
// user; the session always re-probes before trusting it.
type AuthResponse struct {
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// ForgotPasswordRequest asks the backend to mail a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest sets a new password from a reset token.
type ResetPasswordRequest struct {
	Token string `json:"token" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}
