package engine

import (
	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
)

// Gated operations.
const (
	OpCreateTask = "create task"
	OpDeleteTask = "delete task"
)

// LockCheck is the outcome of reconciling stored lock state with today.
type LockCheck struct {
	State domain.LockState
	// Settings is the reconciled copy; the input is never modified.
	Settings domain.GameSettings
	// Changed is true when the stored lock was stale and must be saved.
	Changed bool
}

// IsLocked reports whether the gate is closed today.
func (c LockCheck) IsLocked() bool {
	return c.State == domain.Locked
}

// CheckLock applies the day-boundary rule: a lock stamped on any day other
// than today no longer holds, so the state is forced to unlocked and the lock
// day is restamped to today.
func CheckLock(settings domain.GameSettings, today calendar.Day) LockCheck {
	next := settings
	changed := false
	if next.LockDay != today {
		next.IsLocked = false
		next.LockDay = today
		changed = true
	}
	return LockCheck{
		State:    lockState(next, today),
		Settings: next,
		Changed:  changed,
	}
}

// ToggleLock flips the lock after reconciling it with today. Locking stamps
// today as the effective day.
func ToggleLock(settings domain.GameSettings, today calendar.Day) domain.GameSettings {
	next := CheckLock(settings, today).Settings
	next.IsLocked = !next.IsLocked
	if next.IsLocked {
		next.LockDay = today
	}
	return next
}

// GuardMutation returns a *LockedError when the gate is closed for today.
// Completion toggles and session submissions must never call this.
func GuardMutation(settings domain.GameSettings, today calendar.Day, op string) error {
	if lockState(settings, today) == domain.Locked {
		return &LockedError{Operation: op, Day: today}
	}
	return nil
}

func lockState(s domain.GameSettings, today calendar.Day) domain.LockState {
	if s.IsLocked && s.LockDay == today {
		return domain.Locked
	}
	return domain.Unlocked
}
