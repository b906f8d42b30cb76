package engine

import (
	"testing"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLock_SameDayLockHolds(t *testing.T) {
	s := domain.GameSettings{IsLocked: true, LockDay: today}
	check := CheckLock(s, today)

	assert.True(t, check.IsLocked())
	assert.False(t, check.Changed)
	assert.Equal(t, s, check.Settings)
}

func TestCheckLock_AutoUnlocksWhenDayDiffers(t *testing.T) {
	for _, locked := range []bool{true, false} {
		s := domain.GameSettings{IsLocked: locked, LockDay: today.AddDays(-1), WalletBalance: 12}
		check := CheckLock(s, today)

		assert.False(t, check.IsLocked())
		assert.True(t, check.Changed)
		assert.False(t, check.Settings.IsLocked)
		assert.Equal(t, today, check.Settings.LockDay)
		assert.Equal(t, 12, check.Settings.WalletBalance)
		assert.Equal(t, locked, s.IsLocked, "input not mutated")
	}
}

func TestCheckLock_EmptyLockDayIsStale(t *testing.T) {
	check := CheckLock(domain.GameSettings{}, today)
	assert.True(t, check.Changed)
	assert.Equal(t, today, check.Settings.LockDay)
}

func TestToggleLock(t *testing.T) {
	s := domain.GameSettings{LockDay: today}

	locked := ToggleLock(s, today)
	assert.True(t, locked.IsLocked)
	assert.Equal(t, today, locked.LockDay)

	unlocked := ToggleLock(locked, today)
	assert.False(t, unlocked.IsLocked)
}

func TestToggleLock_StaleLockIsReconciledFirst(t *testing.T) {
	stale := domain.GameSettings{IsLocked: true, LockDay: today.AddDays(-2)}

	next := ToggleLock(stale, today)
	assert.True(t, next.IsLocked, "stale lock counts as unlocked, so toggling locks today")
	assert.Equal(t, today, next.LockDay)
}

func TestGuardMutation(t *testing.T) {
	locked := domain.GameSettings{IsLocked: true, LockDay: today}

	err := GuardMutation(locked, today, OpCreateTask)
	require.Error(t, err)
	assert.True(t, IsLocked(err))
	assert.Contains(t, err.Error(), LockedMessage)

	var le *LockedError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, OpCreateTask, le.Operation)

	assert.NoError(t, GuardMutation(locked, calendar.Day("2025-10-26"), OpDeleteTask))
	assert.NoError(t, GuardMutation(domain.GameSettings{LockDay: today}, today, OpDeleteTask))
}
