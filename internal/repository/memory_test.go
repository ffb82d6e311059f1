package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"todos-be/internal/entities"
)

func TestMemoryUserCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &entities.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         entities.RoleUser,
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected Create to fill ID")
	}

	dup := &entities.User{Name: "Fake Alice", Email: "alice@example.com"}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("expected ID %q, got %q", user.ID, found.ID)
	}

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	found.Name = "Alice Updated"
	now := time.Now().UTC()
	found.LastLogin = &now
	if err := repo.Update(ctx, found); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if again.Name != "Alice Updated" || again.LastLogin == nil {
		t.Errorf("update not applied: %+v", again)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryUserUpdateEmailCollision(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	a := &entities.User{Name: "A", Email: "a@example.com"}
	b := &entities.User{Name: "B", Email: "b@example.com"}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	b.Email = "a@example.com"
	if err := repo.Update(ctx, b); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func seedTodos(t *testing.T, repo TodoRepository, userID string) {
	t.Helper()
	ctx := context.Background()

	fixtures := []entities.Todo{
		{Task: "buy milk", Priority: entities.PriorityLow, Tags: []string{"errand"}},
		{Task: "ship release", Priority: entities.PriorityHigh, Tags: []string{"work", "urgent"}},
		{Task: "write report", Priority: entities.PriorityHigh, Completed: true, Tags: []string{"work"}},
		{Task: "water plants", Priority: entities.PriorityMedium},
	}
	for i := range fixtures {
		fixtures[i].UserID = userID
		// Stagger creation times so sorting is deterministic.
		fixtures[i].CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		if err := repo.Create(ctx, &fixtures[i]); err != nil {
			t.Fatalf("Create todo %d: %v", i, err)
		}
	}
}

func TestMemoryTodoListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()
	seedTodos(t, repo, "u1")

	// Another user's todo must never appear.
	other := &entities.Todo{Task: "intruder", UserID: "u2", Priority: entities.PriorityLow}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	todos, total, err := repo.List(ctx, TodoFilter{UserID: "u1", Limit: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 || len(todos) != 4 {
		t.Fatalf("expected 4 todos, got total=%d len=%d", total, len(todos))
	}
	// Newest first.
	if todos[0].Task != "water plants" {
		t.Errorf("expected newest todo first, got %q", todos[0].Task)
	}

	completed := false
	todos, total, err = repo.List(ctx, TodoFilter{UserID: "u1", Completed: &completed, Priority: entities.PriorityHigh, Limit: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || todos[0].Task != "ship release" {
		t.Fatalf("expected only the pending high-priority todo, got total=%d", total)
	}

	todos, total, err = repo.List(ctx, TodoFilter{UserID: "u1", Tag: "work", Limit: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 work-tagged todos, got %d", total)
	}

	// Pagination.
	todos, total, err = repo.List(ctx, TodoFilter{UserID: "u1", Limit: 2, Offset: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 || len(todos) != 1 {
		t.Fatalf("expected page of 1 with total 4, got total=%d len=%d", total, len(todos))
	}
}

func TestMemoryTodoStatsAndCascade(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()
	seedTodos(t, repo, "u1")

	stats, err := repo.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 || stats.Completed != 1 || stats.Pending != 3 {
		t.Errorf("unexpected status counts: %+v", stats)
	}
	if stats.ByPriority.Low != 1 || stats.ByPriority.Medium != 1 || stats.ByPriority.High != 2 {
		t.Errorf("unexpected priority counts: %+v", stats.ByPriority)
	}

	deleted, err := repo.DeleteByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	if deleted != 4 {
		t.Errorf("expected 4 deleted, got %d", deleted)
	}

	_, total, err := repo.List(ctx, TodoFilter{UserID: "u1", Limit: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 {
		t.Errorf("expected no todos after cascade, got %d", total)
	}
}
