package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/grindstone/internal/db"
	"github.com/alexanderramin/grindstone/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, domain_id, title, is_active, points, difficulty, resistance_level,
	planned_duration, actual_duration, recall_accuracy, feynman_reflection, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.DomainID,
		t.Title,
		boolToInt(t.IsActive),
		t.Points,
		int(t.Difficulty),
		t.ResistanceLevel,
		t.PlannedDuration,
		t.ActualDuration,
		t.RecallAccuracy,
		t.FeynmanReflection,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`
	if activeOnly {
		query = `SELECT ` + taskColumns + ` FROM tasks WHERE is_active = 1 ORDER BY created_at, id`
	}
	return r.queryTasks(ctx, "listing tasks", query)
}

func (r *SQLiteTaskRepo) ListByDomain(ctx context.Context, domainID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE domain_id = ? ORDER BY created_at, id`
	return r.queryTasks(ctx, "listing tasks by domain", query, domainID)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET domain_id = ?, title = ?, is_active = ?, points = ?, difficulty = ?,
		resistance_level = ?, planned_duration = ?, actual_duration = ?, recall_accuracy = ?,
		feynman_reflection = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.DomainID,
		t.Title,
		boolToInt(t.IsActive),
		t.Points,
		int(t.Difficulty),
		t.ResistanceLevel,
		t.PlannedDuration,
		t.ActualDuration,
		t.RecallAccuracy,
		t.FeynmanReflection,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the task. Its ledger entries cascade.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("deleting all tasks: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) queryTasks(ctx context.Context, op, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var active, difficulty int
	var createdAt, updatedAt string

	err := row.Scan(
		&t.ID, &t.DomainID, &t.Title, &active, &t.Points, &difficulty, &t.ResistanceLevel,
		&t.PlannedDuration, &t.ActualDuration, &t.RecallAccuracy, &t.FeynmanReflection,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.IsActive = intToBool(active)
	t.Difficulty = domain.Difficulty(difficulty)

	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
