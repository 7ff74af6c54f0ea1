package model

import "time"

// Workspace is the tenant a staff user belongs to.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateWorkspaceRequest represents a workspace creation request.
type CreateWorkspaceRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
	Slug string `json:"slug" validate:"required,min=3,max=40,slug"`
}
