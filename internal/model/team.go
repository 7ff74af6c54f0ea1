package model

import "time"

// Team roles accepted by the invite endpoint.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// TeamMember is a staff user of the workspace.
type TeamMember struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Nome     string    `json:"nome"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// InviteRequest invites a new staff member to the workspace.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

// Invite is a pending team invitation.
type Invite struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
}
