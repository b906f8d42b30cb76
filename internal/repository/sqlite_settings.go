package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/db"
	"github.com/alexanderramin/grindstone/internal/domain"
)

const settingsID = "default"

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database.
// There is a single row keyed 'default'.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.GameSettings, error) {
	query := `SELECT is_locked, lock_day, earned_badges, wallet_balance FROM game_settings WHERE id = ?`

	var s domain.GameSettings
	var locked int
	var lockDay, badges string
	err := r.db.QueryRowContext(ctx, query, settingsID).Scan(&locked, &lockDay, &badges, &s.WalletBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("game settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning game settings: %w", err)
	}
	s.IsLocked = intToBool(locked)
	s.LockDay = calendar.Day(lockDay)
	if err := json.Unmarshal([]byte(badges), &s.EarnedBadges); err != nil {
		return nil, fmt.Errorf("decoding earned badges: %w", err)
	}
	if s.EarnedBadges == nil {
		s.EarnedBadges = []string{}
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.GameSettings) error {
	badges := s.EarnedBadges
	if badges == nil {
		badges = []string{}
	}
	encoded, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("encoding earned badges: %w", err)
	}

	query := `INSERT INTO game_settings (id, is_locked, lock_day, earned_badges, wallet_balance)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_locked = excluded.is_locked,
			lock_day = excluded.lock_day,
			earned_badges = excluded.earned_badges,
			wallet_balance = excluded.wallet_balance`
	_, err = r.db.ExecContext(ctx, query,
		settingsID,
		boolToInt(s.IsLocked),
		s.LockDay.String(),
		string(encoded),
		s.WalletBalance,
	)
	if err != nil {
		return fmt.Errorf("upserting game settings: %w", err)
	}
	return nil
}
