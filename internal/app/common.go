package app

import (
	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/engine"
)

// TaskView is an active task joined with its domain and today's completion.
type TaskView struct {
	Task        *domain.Task
	DomainName  string
	DomainColor string
	Completed   bool
}

type LockStatus struct {
	State domain.LockState
	Day   calendar.Day
}

func (s LockStatus) IsLocked() bool { return s.State == domain.Locked }

// DashboardView is everything the today screen renders.
type DashboardView struct {
	Today          calendar.Day
	Lock           LockStatus
	Tasks          []TaskView
	Balance        []engine.DomainScore
	TodayPoints    int
	TasksCompleted int
	WalletBalance  int
	Backfilled     int
}

type BadgeProgress struct {
	Badge    domain.BadgeDef
	Progress int
	Earned   bool
}

// LegacyView is the long-horizon summary: streaks, badges and history.
type LegacyView struct {
	Today         calendar.Day
	Streak        int
	LongestStreak int
	ActiveDays    int
	Badges        []BadgeProgress
	NewlyEarned   []string
	WalletBalance int
	Recent        []*domain.DailyHistory
}

// SessionInput is what the debrief collects. Difficulty and resistance are
// clamped; duration and recall are validated.
type SessionInput struct {
	ActualDuration  int
	Difficulty      int
	ResistanceLevel int
	RecallAccuracy  float64
	Reflection      string
}

type SessionOutcome struct {
	Task          *domain.Task
	Entry         *domain.ActivityEntry
	Points        int
	WalletBalance int
}

// ToggleOutcome reports the completion state after a toggle. Delta is the
// signed wallet change.
type ToggleOutcome struct {
	Task          *domain.Task
	Completed     bool
	Delta         int
	WalletBalance int
}
