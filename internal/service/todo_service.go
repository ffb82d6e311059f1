package service

import (
	"context"
	"time"

	"todos-be/internal/cache"
	"todos-be/internal/entities"
	"todos-be/internal/models"
	"todos-be/internal/repository"
)

const todoCacheTTL = 5 * time.Minute

// TodoService defines the interface for todo business logic
type TodoService interface {
	Create(ctx context.Context, userID string, req *models.CreateTodoRequest) (*entities.Todo, error)
	Get(ctx context.Context, actor *entities.User, id string) (*entities.Todo, error)
	List(ctx context.Context, filter repository.TodoFilter) ([]*entities.Todo, int, error)
	Update(ctx context.Context, actor *entities.User, id string, req *models.UpdateTodoRequest) (*entities.Todo, error)
	Delete(ctx context.Context, actor *entities.User, id string) error
	Stats(ctx context.Context, userID string) (*entities.TodoStats, error)
}

type todoService struct {
	todoRepo repository.TodoRepository
	cache    cache.Cache
}

// NewTodoService creates a new todo service. cacheClient may be nil.
func NewTodoService(todoRepo repository.TodoRepository, cacheClient cache.Cache) TodoService {
	return &todoService{
		todoRepo: todoRepo,
		cache:    cacheClient,
	}
}

func todoCacheKey(id string) string {
	return "todo:" + id
}

func (s *todoService) Create(ctx context.Context, userID string, req *models.CreateTodoRequest) (*entities.Todo, error) {
	priority := req.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}

	todo := &entities.Todo{
		Task:        req.Task,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		UserID:      userID,
		Tags:        req.Tags,
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Get returns the todo when the actor owns it or is an admin.
func (s *todoService) Get(ctx context.Context, actor *entities.User, id string) (*entities.Todo, error) {
	// Try cache first (if available)
	if s.cache != nil {
		var cached entities.Todo
		if err := s.cache.GetJSON(ctx, todoCacheKey(id), &cached); err == nil {
			return s.authorize(&cached, actor)
		}
	}

	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, todoCacheKey(id), todo, todoCacheTTL)
	}
	return s.authorize(todo, actor)
}

// authorize gates reads: the owner or an admin. Mutations stay
// owner-only and check ownership directly.
func (s *todoService) authorize(todo *entities.Todo, actor *entities.User) (*entities.Todo, error) {
	if todo.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return todo, nil
}

func (s *todoService) List(ctx context.Context, filter repository.TodoFilter) ([]*entities.Todo, int, error) {
	return s.todoRepo.List(ctx, filter)
}

// Update applies a partial field replace: only fields present in the
// request body change.
func (s *todoService) Update(ctx context.Context, actor *entities.User, id string, req *models.UpdateTodoRequest) (*entities.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo.UserID != actor.ID {
		return nil, ErrForbidden
	}

	if req.Task != nil {
		todo.Task = *req.Task
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.Tags != nil {
		todo.Tags = *req.Tags
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, actor *entities.User, id string) error {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if todo.UserID != actor.ID {
		return ErrForbidden
	}

	if err := s.todoRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *todoService) Stats(ctx context.Context, userID string) (*entities.TodoStats, error) {
	return s.todoRepo.Stats(ctx, userID)
}

func (s *todoService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, todoCacheKey(id))
	}
}
