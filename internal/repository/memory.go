package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"todos-be/internal/entities"
)

// The memory backend is the last-resort store: a mutex-guarded map
// that lives only as long as the process. It exists so the API stays
// usable when neither MongoDB nor the relational fallback is
// reachable.

type userMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

// NewMemoryUserRepository creates a volatile in-process user store.
func NewMemoryUserRepository() UserRepository {
	return &userMemoryRepository{users: make(map[string]entities.User)}
}

func (r *userMemoryRepository) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *userMemoryRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userMemoryRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := user
	return &u, nil
}

func (r *userMemoryRepository) List(_ context.Context, limit, offset int) ([]*entities.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entities.User, 0, len(r.users))
	for _, user := range r.users {
		u := user
		all = append(all, &u)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	return page(all, limit, offset), total, nil
}

func (r *userMemoryRepository) Update(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Role = user.Role
	stored.IsActive = user.IsActive
	stored.LastLogin = user.LastLogin
	r.users[user.ID] = stored
	return nil
}

func (r *userMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type todoMemoryRepository struct {
	mu    sync.RWMutex
	todos map[string]entities.Todo
}

// NewMemoryTodoRepository creates a volatile in-process todo store.
func NewMemoryTodoRepository() TodoRepository {
	return &todoMemoryRepository{todos: make(map[string]entities.Todo)}
}

func (r *todoMemoryRepository) Create(_ context.Context, todo *entities.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	todo.UpdatedAt = now
	if todo.Tags == nil {
		todo.Tags = []string{}
	}
	r.todos[todo.ID] = *todo
	return nil
}

func (r *todoMemoryRepository) FindByID(_ context.Context, id string) (*entities.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	t := todo
	return &t, nil
}

func matchesFilter(todo *entities.Todo, filter TodoFilter) bool {
	if todo.UserID != filter.UserID {
		return false
	}
	if filter.Completed != nil && todo.Completed != *filter.Completed {
		return false
	}
	if filter.Priority != "" && todo.Priority != filter.Priority {
		return false
	}
	if filter.Tag != "" {
		found := false
		for _, tag := range todo.Tags {
			if tag == filter.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *todoMemoryRepository) List(_ context.Context, filter TodoFilter) ([]*entities.Todo, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entities.Todo
	for _, todo := range r.todos {
		t := todo
		if matchesFilter(&t, filter) {
			matched = append(matched, &t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	return page(matched, filter.Limit, filter.Offset), total, nil
}

func (r *todoMemoryRepository) Update(_ context.Context, todo *entities.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.todos[todo.ID]
	if !ok {
		return ErrNotFound
	}
	todo.UpdatedAt = time.Now().UTC()
	stored.Task = todo.Task
	stored.Description = todo.Description
	stored.Completed = todo.Completed
	stored.Priority = todo.Priority
	stored.DueDate = todo.DueDate
	stored.Tags = todo.Tags
	stored.UpdatedAt = todo.UpdatedAt
	r.todos[todo.ID] = stored
	return nil
}

func (r *todoMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *todoMemoryRepository) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, todo := range r.todos {
		if todo.UserID == userID {
			delete(r.todos, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *todoMemoryRepository) Stats(_ context.Context, userID string) (*entities.TodoStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &entities.TodoStats{}
	for _, todo := range r.todos {
		if todo.UserID == userID {
			accumulateStats(stats, todo.Completed, todo.Priority, 1)
		}
	}
	return stats, nil
}

// page slices a sorted result set by limit/offset.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
