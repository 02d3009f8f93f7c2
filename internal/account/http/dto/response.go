package dto

import (
	"time"

	"github.com/allisson/accounts/internal/account/domain"
)

// UserResponse is the public representation of an account. It never carries the password hash
// or any pending code.
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	IsVerified bool       `json:"isVerified"`
	LastLogin  *time.Time `json:"lastLogin"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// MessageResponse is returned by operations without a payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserEnvelope wraps a user with the success flag and an optional message.
type UserEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
}

// MapProfileToResponse converts a domain profile to its API representation.
func MapProfileToResponse(profile *domain.Profile) UserResponse {
	return UserResponse{
		ID:         profile.ID.String(),
		Name:       profile.Name,
		Email:      profile.Email,
		IsVerified: profile.IsVerified,
		LastLogin:  profile.LastLogin,
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
	}
}

// NewUserEnvelope builds a successful user envelope.
func NewUserEnvelope(message string, profile *domain.Profile) UserEnvelope {
	return UserEnvelope{
		Success: true,
		Message: message,
		User:    MapProfileToResponse(profile),
	}
}

// NewMessageResponse builds a successful message response.
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}
