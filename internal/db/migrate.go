package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// whole list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS domains (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		color       TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		is_active   INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                 TEXT PRIMARY KEY,
		domain_id          TEXT NOT NULL REFERENCES domains(id),
		title              TEXT NOT NULL,
		is_active          INTEGER NOT NULL DEFAULT 1,
		points             INTEGER NOT NULL DEFAULT 0,
		difficulty         INTEGER NOT NULL DEFAULT 2 CHECK(difficulty IN (1,2,3)),
		resistance_level   INTEGER NOT NULL DEFAULT 0 CHECK(resistance_level BETWEEN 0 AND 10),
		planned_duration   INTEGER NOT NULL DEFAULT 30,
		actual_duration    INTEGER NOT NULL DEFAULT 0,
		recall_accuracy    REAL NOT NULL DEFAULT 1.0 CHECK(recall_accuracy IN (0.5,1.0)),
		feynman_reflection TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_domain ON tasks(domain_id)`,

	`CREATE TABLE IF NOT EXISTS activity_log (
		id            TEXT PRIMARY KEY,
		task_id       TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		day           TEXT NOT NULL,
		points_earned INTEGER NOT NULL,
		completed_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_task_day ON activity_log(task_id, day)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_day ON activity_log(day)`,

	// Entries record how they were earned (completion toggle or full session).
	`ALTER TABLE activity_log ADD COLUMN source TEXT NOT NULL DEFAULT 'toggle'`,

	`CREATE TABLE IF NOT EXISTS daily_history (
		day             TEXT PRIMARY KEY,
		total_points    INTEGER NOT NULL,
		tasks_completed INTEGER NOT NULL,
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS game_settings (
		id             TEXT PRIMARY KEY DEFAULT 'default',
		is_locked      INTEGER NOT NULL DEFAULT 0,
		lock_day       TEXT NOT NULL DEFAULT '',
		earned_badges  TEXT NOT NULL DEFAULT '[]',
		wallet_balance INTEGER NOT NULL DEFAULT 0 CHECK(wallet_balance >= 0)
	)`,
}
