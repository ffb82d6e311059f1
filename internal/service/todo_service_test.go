package service

import (
	"context"
	"errors"
	"testing"

	"todos-be/internal/entities"
	"todos-be/internal/models"
	"todos-be/internal/repository"
)

var (
	owner = &entities.User{ID: "owner", Role: entities.RoleUser, IsActive: true}
	other = &entities.User{ID: "other", Role: entities.RoleUser, IsActive: true}
	admin = &entities.User{ID: "admin", Role: entities.RoleAdmin, IsActive: true}
)

func newTodoService() TodoService {
	return NewTodoService(repository.NewMemoryTodoRepository(), nil)
}

func TestTodoCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTodoService()

	todo, err := svc.Create(ctx, owner.ID, &models.CreateTodoRequest{Task: "buy milk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.Priority != entities.PriorityMedium {
		t.Errorf("expected default priority medium, got %q", todo.Priority)
	}
	if todo.Completed {
		t.Error("new todo must not be completed")
	}
	if todo.UserID != owner.ID {
		t.Errorf("expected owner %q, got %q", owner.ID, todo.UserID)
	}
	if todo.CreatedAt.IsZero() || todo.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be stamped")
	}
}

func TestTodoOwnership(t *testing.T) {
	ctx := context.Background()
	svc := newTodoService()

	todo, err := svc.Create(ctx, owner.ID, &models.CreateTodoRequest{Task: "private"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, other, todo.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}

	// Admins may read any todo.
	if _, err := svc.Get(ctx, admin, todo.ID); err != nil {
		t.Fatalf("expected admin read to succeed, got %v", err)
	}

	if _, err := svc.Get(ctx, owner, todo.ID); err != nil {
		t.Fatalf("expected owner read to succeed, got %v", err)
	}

	done := true
	if _, err := svc.Update(ctx, other, todo.ID, &models.UpdateTodoRequest{Completed: &done}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on foreign update, got %v", err)
	}
	if err := svc.Delete(ctx, other, todo.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on foreign delete, got %v", err)
	}

	// Admins read any todo but mutations stay owner-only.
	if _, err := svc.Update(ctx, admin, todo.ID, &models.UpdateTodoRequest{Completed: &done}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on admin update of foreign todo, got %v", err)
	}
	if err := svc.Delete(ctx, admin, todo.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on admin delete of foreign todo, got %v", err)
	}
}

func TestTodoPartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newTodoService()

	todo, err := svc.Create(ctx, owner.ID, &models.CreateTodoRequest{
		Task:        "write report",
		Description: "quarterly numbers",
		Priority:    entities.PriorityHigh,
		Tags:        []string{"work"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	done := true
	updated, err := svc.Update(ctx, owner, todo.ID, &models.UpdateTodoRequest{Completed: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Completed {
		t.Error("expected completed to flip")
	}
	// Untouched fields keep their values.
	if updated.Task != "write report" || updated.Description != "quarterly numbers" {
		t.Errorf("partial update clobbered fields: %+v", updated)
	}
	if updated.Priority != entities.PriorityHigh || len(updated.Tags) != 1 {
		t.Errorf("partial update clobbered fields: %+v", updated)
	}

	newTags := []string{"work", "done"}
	updated, err = svc.Update(ctx, owner, todo.ID, &models.UpdateTodoRequest{Tags: &newTags})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Tags) != 2 {
		t.Errorf("expected tags replaced, got %v", updated.Tags)
	}
}

func TestTodoUpdateMissing(t *testing.T) {
	ctx := context.Background()
	svc := newTodoService()

	done := true
	_, err := svc.Update(ctx, owner, "missing", &models.UpdateTodoRequest{Completed: &done})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTodoDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTodoService()

	todo, err := svc.Create(ctx, owner.ID, &models.CreateTodoRequest{Task: "temp"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, owner, todo.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, owner, todo.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
