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

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, task_id, day, points_earned, source, completed_at`

func (r *SQLiteActivityRepo) Record(ctx context.Context, e *domain.ActivityEntry) error {
	source := e.Source
	if source == "" {
		source = domain.SourceToggle
	}
	query := `INSERT INTO activity_log (` + activityColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.TaskID,
		e.Day.String(),
		e.PointsEarned,
		string(source),
		formatTime(e.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}
	return nil
}

// FindForDay returns the most recent entry for the task on day.
func (r *SQLiteActivityRepo) FindForDay(ctx context.Context, taskID string, day calendar.Day) (*domain.ActivityEntry, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log
		WHERE task_id = ? AND day = ?
		ORDER BY completed_at DESC, rowid DESC
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, taskID, day.String())
	return r.scanEntry(row)
}

func (r *SQLiteActivityRepo) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activity_log WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("activity entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteActivityRepo) ListByDay(ctx context.Context, day calendar.Day) ([]*domain.ActivityEntry, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log WHERE day = ? ORDER BY completed_at, rowid`
	return r.queryEntries(ctx, "listing activity by day", query, day.String())
}

// ListDays returns each day with at least one entry, ascending.
func (r *SQLiteActivityRepo) ListDays(ctx context.Context) ([]calendar.Day, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT day FROM activity_log ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("listing activity days: %w", err)
	}
	defer rows.Close()

	var days []calendar.Day
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning activity day: %w", err)
		}
		day, err := calendar.ParseDay(s)
		if err != nil {
			return nil, fmt.Errorf("parsing activity day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity days: %w", err)
	}
	return days, nil
}

func (r *SQLiteActivityRepo) SumPoints(ctx context.Context, day calendar.Day) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(points_earned), 0) FROM activity_log WHERE day = ?`
	if err := r.db.QueryRowContext(ctx, query, day.String()).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing points: %w", err)
	}
	return total, nil
}

func (r *SQLiteActivityRepo) CountEntries(ctx context.Context, day calendar.Day) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM activity_log WHERE day = ?`
	if err := r.db.QueryRowContext(ctx, query, day.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting activity entries: %w", err)
	}
	return n, nil
}

// CountByDomain returns lifetime entry counts keyed by domain name.
// Domains with no entries are absent from the map.
func (r *SQLiteActivityRepo) CountByDomain(ctx context.Context, activeOnly bool) (map[string]int, error) {
	query := `SELECT d.name, COUNT(a.id)
		FROM activity_log a
		JOIN tasks t ON t.id = a.task_id
		JOIN domains d ON d.id = t.domain_id`
	if activeOnly {
		query += ` WHERE d.is_active = 1`
	}
	query += ` GROUP BY d.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting activity by domain: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scanning domain count: %w", err)
		}
		counts[name] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating domain counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteActivityRepo) queryEntries(ctx context.Context, op, query string, args ...any) ([]*domain.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []*domain.ActivityEntry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity: %w", err)
	}
	return entries, nil
}

func (r *SQLiteActivityRepo) scanEntry(row rowScanner) (*domain.ActivityEntry, error) {
	var e domain.ActivityEntry
	var day, source, completedAt string
	if err := row.Scan(&e.ID, &e.TaskID, &day, &e.PointsEarned, &source, &completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("activity entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning activity entry: %w", err)
	}
	var err error
	if e.Day, err = calendar.ParseDay(day); err != nil {
		return nil, fmt.Errorf("parsing day: %w", err)
	}
	e.Source = domain.ActivitySource(source)
	if e.CompletedAt, err = parseTime("completed_at", completedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
