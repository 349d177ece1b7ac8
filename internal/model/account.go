package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered operator of the system. It is distinct from Student.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AccountSummary is the public view of an account returned by the auth endpoints.
type AccountSummary struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary returns the public view of the account.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:        a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// CredentialsRequest is the payload for register and login.
// Presence and format rules are enforced by the auth service so that each
// failure gets its own error code.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=128"`
}

// ChangePasswordRequest is the payload for changing the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"max=128"`
	NewPassword     string `json:"newPassword" binding:"max=128"`
}

// AuthResponse is returned after successful registration or login.
type AuthResponse struct {
	Message string         `json:"message"`
	User    AccountSummary `json:"user"`
	Token   string         `json:"token"`
}
