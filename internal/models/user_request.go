package models

// UpdateUserRequest represents an admin-side partial update of a user
// account. Only non-nil fields are applied.
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"is_active,omitempty"`
}
