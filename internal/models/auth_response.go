package models

import (
	"time"

	"todos-be/internal/entities"
)

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"` // JWT token
}

// ProfileResponse is the shape returned by the profile endpoints.
type ProfileResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// NewProfileResponse converts a user entity to its response DTO.
func NewProfileResponse(u *entities.User) *ProfileResponse {
	return &ProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
