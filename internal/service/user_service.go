package service

import (
	"context"
	"fmt"
	"log"

	"todos-be/internal/cache"
	"todos-be/internal/models"
	"todos-be/internal/repository"
)

// UserService defines the interface for admin-side user management
type UserService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.ProfileResponse, int, error)
	GetUser(ctx context.Context, id string) (*models.ProfileResponse, error)
	UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.ProfileResponse, error)
	// DeleteUser removes the user and cascades to their todos. actorID
	// is the calling admin; deleting yourself is rejected.
	DeleteUser(ctx context.Context, actorID, id string) error
}

type userService struct {
	userRepo repository.UserRepository
	todoRepo repository.TodoRepository
	cache    cache.Cache
}

// NewUserService creates a new user admin service. cacheClient may be nil.
func NewUserService(userRepo repository.UserRepository, todoRepo repository.TodoRepository, cacheClient cache.Cache) UserService {
	return &userService{
		userRepo: userRepo,
		todoRepo: todoRepo,
		cache:    cacheClient,
	}
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]*models.ProfileResponse, int, error) {
	users, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]*models.ProfileResponse, len(users))
	for i, user := range users {
		responses[i] = models.NewProfileResponse(user)
	}
	return responses, total, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewProfileResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, userCacheKey(id))
	}

	return models.NewProfileResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrSelfDelete
	}

	// Sweep the todos before the user row so a failed cascade never
	// leaves orphaned todos. The SQL store also enforces this with
	// ON DELETE CASCADE; Mongo and memory rely on the explicit sweep.
	if s.cache != nil {
		s.invalidateTodos(ctx, id)
	}
	deleted, err := s.todoRepo.DeleteByUserID(ctx, id)
	if err != nil {
		return fmt.Errorf("todo cascade failed: %w", err)
	}
	if deleted > 0 {
		log.Printf("Deleted %d todos owned by removed user %s", deleted, id)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, userCacheKey(id))
	}
	return nil
}

const cascadeBatchSize = 500

// invalidateTodos drops the cache entry of every todo owned by the
// user. Must run before the todos themselves are deleted.
func (s *userService) invalidateTodos(ctx context.Context, userID string) {
	for offset := 0; ; offset += cascadeBatchSize {
		todos, total, err := s.todoRepo.List(ctx, repository.TodoFilter{
			UserID: userID,
			Limit:  cascadeBatchSize,
			Offset: offset,
		})
		if err != nil || len(todos) == 0 {
			return
		}
		for _, todo := range todos {
			_ = s.cache.Delete(ctx, todoCacheKey(todo.ID))
		}
		if offset+len(todos) >= total {
			return
		}
	}
}
