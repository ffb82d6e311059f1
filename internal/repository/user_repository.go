package repository

import (
	"context"

	"todos-be/internal/entities"
)

// UserRepository defines the interface for user persistence. All three
// backends (MongoDB, SQL, memory) satisfy it.
type UserRepository interface {
	// Create inserts the user and fills in its ID.
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	// List returns a page of users plus the total user count.
	List(ctx context.Context, limit, offset int) ([]*entities.User, int, error)
	// Update replaces the mutable fields of the stored user.
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
}
