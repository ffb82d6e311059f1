package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"todos-be/internal/entities"
)

type todoSQLRepository struct {
	db *sql.DB
}

// NewSQLTodoRepository creates a todo repository backed by database/sql.
func NewSQLTodoRepository(db *sql.DB) TodoRepository {
	return &todoSQLRepository{db: db}
}

// Tags are stored as a JSON array in a TEXT column so the same schema
// serves SQLite and Postgres.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

func (r *todoSQLRepository) Create(ctx context.Context, todo *entities.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	todo.UpdatedAt = now

	query := `
		INSERT INTO todos (id, task, description, completed, priority, due_date, user_id, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	var dueDate sql.NullTime
	if todo.DueDate != nil {
		dueDate = sql.NullTime{Time: *todo.DueDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.Task, todo.Description, todo.Completed, todo.Priority,
		dueDate, todo.UserID, encodeTags(todo.Tags), todo.CreatedAt, todo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

func (r *todoSQLRepository) FindByID(ctx context.Context, id string) (*entities.Todo, error) {
	query := `
		SELECT id, task, description, completed, priority, due_date, user_id, tags, created_at, updated_at
		FROM todos
		WHERE id = $1
	`
	var todo entities.Todo
	var dueDate sql.NullTime
	var tags string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID,
		&todo.Task,
		&todo.Description,
		&todo.Completed,
		&todo.Priority,
		&dueDate,
		&todo.UserID,
		&tags,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	if dueDate.Valid {
		todo.DueDate = &dueDate.Time
	}
	todo.Tags = decodeTags(tags)
	return &todo, nil
}

// buildWhere renders the filter as a WHERE clause. Placeholders are
// numbered in order of appearance so the same SQL binds correctly on
// both drivers.
func buildWhere(filter TodoFilter) (string, []interface{}) {
	where := "WHERE user_id = $1"
	args := []interface{}{filter.UserID}

	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		where += fmt.Sprintf(" AND completed = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if filter.Tag != "" {
		// Tags live in a JSON array column; match the quoted element.
		args = append(args, `%"`+filter.Tag+`"%`)
		where += fmt.Sprintf(" AND tags LIKE $%d", len(args))
	}
	return where, args
}

func (r *todoSQLRepository) List(ctx context.Context, filter TodoFilter) ([]*entities.Todo, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM todos " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count todos: %w", err)
	}

	args = append(args, filter.Limit)
	limitPlaceholder := len(args)
	args = append(args, filter.Offset)
	offsetPlaceholder := len(args)

	query := fmt.Sprintf(`
		SELECT id, task, description, completed, priority, due_date, user_id, tags, created_at, updated_at
		FROM todos
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, limitPlaceholder, offsetPlaceholder)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*entities.Todo
	for rows.Next() {
		var todo entities.Todo
		var dueDate sql.NullTime
		var tags string
		err = rows.Scan(
			&todo.ID,
			&todo.Task,
			&todo.Description,
			&todo.Completed,
			&todo.Priority,
			&dueDate,
			&todo.UserID,
			&tags,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan todo: %w", err)
		}
		if dueDate.Valid {
			todo.DueDate = &dueDate.Time
		}
		todo.Tags = decodeTags(tags)
		todos = append(todos, &todo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return todos, total, nil
}

func (r *todoSQLRepository) Update(ctx context.Context, todo *entities.Todo) error {
	todo.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE todos
		SET task = $1, description = $2, completed = $3, priority = $4, due_date = $5, tags = $6, updated_at = $7
		WHERE id = $8
	`
	var dueDate sql.NullTime
	if todo.DueDate != nil {
		dueDate = sql.NullTime{Time: *todo.DueDate, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, query,
		todo.Task, todo.Description, todo.Completed, todo.Priority,
		dueDate, encodeTags(todo.Tags), todo.UpdatedAt, todo.ID)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *todoSQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *todoSQLRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todos for user: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

func (r *todoSQLRepository) Stats(ctx context.Context, userID string) (*entities.TodoStats, error) {
	query := `
		SELECT completed, priority, COUNT(*)
		FROM todos
		WHERE user_id = $1
		GROUP BY completed, priority
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate todo stats: %w", err)
	}
	defer rows.Close()

	stats := &entities.TodoStats{}
	for rows.Next() {
		var completed bool
		var priority string
		var count int
		if err := rows.Scan(&completed, &priority, &count); err != nil {
			return nil, fmt.Errorf("failed to scan todo stats: %w", err)
		}
		accumulateStats(stats, completed, priority, count)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// accumulateStats folds one (completed, priority, count) group into the
// running totals. Shared with the memory backend.
func accumulateStats(stats *entities.TodoStats, completed bool, priority string, count int) {
	stats.Total += count
	if completed {
		stats.Completed += count
	} else {
		stats.Pending += count
	}
	switch priority {
	case entities.PriorityLow:
		stats.ByPriority.Low += count
	case entities.PriorityMedium:
		stats.ByPriority.Medium += count
	case entities.PriorityHigh:
		stats.ByPriority.High += count
	}
}
