package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"todos-be/internal/entities"
)

func newMockDB(t *testing.T) (*userSQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &userSQLRepository{db: db}, mock
}

func TestSQLUserCreate(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "Alice", "alice@example.com", "hash", "user", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &entities.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         entities.RoleUser,
		IsActive:     true,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected Create to fill ID")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSQLUserCreateDuplicate(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Message: `duplicate key value violates unique constraint "users_email_key"`})

	user := &entities.User{Name: "Alice", Email: "alice@example.com"}
	if err := repo.Create(context.Background(), user); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSQLUserCreateDuplicateSQLite(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	user := &entities.User{Name: "Alice", Email: "alice@example.com"}
	if err := repo.Create(context.Background(), user); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "role", "is_active", "created_at", "last_login"}
}

func TestSQLUserFindByEmail(t *testing.T) {
	repo, mock := newMockDB(t)

	created := time.Now().UTC()
	lastLogin := created.Add(time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("u1", "Alice", "alice@example.com", "hash", "admin", true, created, lastLogin))

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user.ID != "u1" || user.Role != "admin" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.LastLogin == nil || !user.LastLogin.Equal(lastLogin) {
		t.Errorf("expected last login %v, got %v", lastLogin, user.LastLogin)
	}
}

func TestSQLUserFindByIDNotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLUserUpdateNotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	user := &entities.User{ID: "missing", Name: "X", Email: "x@example.com"}
	if err := repo.Update(context.Background(), user); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLUserDelete(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
