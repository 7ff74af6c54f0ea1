package model

import "time"

// Client is an external client record managed by the workspace staff.
type Client struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Empresa   string    `json:"empresa,omitempty"`
	Telefone  string    `json:"telefone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateClientRequest represents a client creation request.
type CreateClientRequest struct {
	Nome     string `json:"nome" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Empresa  string `json:"empresa,omitempty" validate:"omitempty,max=100"`
	Telefone string `json:"telefone,omitempty" validate:"omitempty,max=30"`
}

// UpdateClientRequest updates a client record. Nil fields are left unchanged.
type UpdateClientRequest struct {
	Nome     *string `json:"nome,omitempty" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Empresa  *string `json:"empresa,omitempty" validate:"omitempty,max=100"`
	Telefone *string `json:"telefone,omitempty" validate:"omitempty,max=30"`
	Active   *bool   `json:"active,omitempty"`
}

// CreatedClient is returned once on creation and carries the one-time
// temporary password issued by the backend.
type CreatedClient struct {
	Client            Client `json:"client"`
	TemporaryPassword string `json:"temporaryPassword"`
}

// ClientAuthData is the identity of a client signed in to the portal of one
// workspace.
type ClientAuthData struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Nome          string `json:"nome"`
	WorkspaceID   string `json:"workspaceId"`
	WorkspaceSlug string `json:"workspaceSlug"`
	WorkspaceName string `json:"workspaceName,omitempty"`
}

// ClientLoginRequest signs a client in to a workspace portal.
type ClientLoginRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Senha         string `json:"senha" validate:"required"`
	WorkspaceSlug string `json:"workspaceSlug" validate:"required,slug"`
}
