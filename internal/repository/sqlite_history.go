package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/db"
	"github.com/alexanderramin/grindstone/internal/domain"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteHistoryRepo(conn db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: conn}
}

const historyColumns = `day, total_points, tasks_completed, created_at`

func (r *SQLiteHistoryRepo) Latest(ctx context.Context) (*domain.DailyHistory, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+historyColumns+` FROM daily_history ORDER BY day DESC LIMIT 1`)
	return r.scanHistory(row)
}

func (r *SQLiteHistoryRepo) Exists(ctx context.Context, day calendar.Day) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_history WHERE day = ?`, day.String()).Scan(&n); err != nil {
		return false, fmt.Errorf("checking history: %w", err)
	}
	return n > 0, nil
}

// CreateIfAbsent relies on the day primary key, so concurrent writers for
// the same day produce exactly one row.
func (r *SQLiteHistoryRepo) CreateIfAbsent(ctx context.Context, h *domain.DailyHistory) (bool, error) {
	query := `INSERT OR IGNORE INTO daily_history (` + historyColumns + `) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		h.Day.String(),
		h.TotalPoints,
		h.TasksCompleted,
		formatTime(h.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("inserting daily history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("daily history rows affected: %w", err)
	}
	return n > 0, nil
}

// ListRecent returns up to limit records, newest first.
func (r *SQLiteHistoryRepo) ListRecent(ctx context.Context, limit int) ([]*domain.DailyHistory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+historyColumns+` FROM daily_history ORDER BY day DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing daily history: %w", err)
	}
	defer rows.Close()

	var records []*domain.DailyHistory
	for rows.Next() {
		h, err := r.scanHistory(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily history: %w", err)
	}
	return records, nil
}

func (r *SQLiteHistoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting daily history: %w", err)
	}
	return n, nil
}

func (r *SQLiteHistoryRepo) scanHistory(row rowScanner) (*domain.DailyHistory, error) {
	var h domain.DailyHistory
	var day, createdAt string
	if err := row.Scan(&day, &h.TotalPoints, &h.TasksCompleted, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("daily history: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily history: %w", err)
	}
	var err error
	if h.Day, err = calendar.ParseDay(day); err != nil {
		return nil, fmt.Errorf("parsing day: %w", err)
	}
	if h.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &h, nil
}
