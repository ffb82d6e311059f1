package models

import "time"

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Task        string     `json:"task" binding:"required,min=1,max=255"`
	Description string     `json:"description" binding:"max=1000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date,omitempty"` // Optional due date
	Tags        []string   `json:"tags,omitempty"`
}

// UpdateTodoRequest represents a partial update of a todo. Only
// fields present in the body replace stored values.
type UpdateTodoRequest struct {
	Task        *string    `json:"task,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=1000"`
	Completed   *bool      `json:"completed,omitempty"`
	Priority    *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
}
