package repository

import (
	"context"

	"todos-be/internal/entities"
)

// TodoFilter narrows a todo listing. Zero values mean "no filter".
type TodoFilter struct {
	UserID    string
	Completed *bool
	Priority  string
	Tag       string
	Limit     int
	Offset    int
}

// TodoRepository defines the interface for todo persistence.
type TodoRepository interface {
	// Create inserts the todo and fills in its ID.
	Create(ctx context.Context, todo *entities.Todo) error
	FindByID(ctx context.Context, id string) (*entities.Todo, error)
	// List returns a page of todos matching the filter plus the total
	// match count, sorted by creation time descending.
	List(ctx context.Context, filter TodoFilter) ([]*entities.Todo, int, error)
	Update(ctx context.Context, todo *entities.Todo) error
	Delete(ctx context.Context, id string) error
	// DeleteByUserID removes every todo owned by the user and reports
	// how many were deleted. Used for the user-deletion cascade.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, userID string) (*entities.TodoStats, error)
}
