package domain

import (
	"slices"
	"time"

	"github.com/alexanderramin/grindstone/internal/calendar"
)

// Domain is a life category tasks belong to. Domains are deactivated, never
// deleted.
type Domain struct {
	ID       string
	Name     string
	Color    string
	Order    int
	IsActive bool
}

// ActivityEntry is one immutable point-earning event in the ledger.
type ActivityEntry struct {
	ID           string
	TaskID       string
	Day          calendar.Day
	PointsEarned int
	Source       ActivitySource
	CompletedAt  time.Time
}

// DailyHistory is the frozen aggregate for one past day.
type DailyHistory struct {
	Day            calendar.Day
	TotalPoints    int
	TasksCompleted int
	CreatedAt      time.Time
}

// GameSettings is the per-user singleton state.
type GameSettings struct {
	IsLocked      bool
	LockDay       calendar.Day
	EarnedBadges  []string
	WalletBalance int
}

// NewGameSettings returns the settings created on first access.
func NewGameSettings(today calendar.Day) *GameSettings {
	return &GameSettings{LockDay: today, EarnedBadges: []string{}}
}

// HasBadge reports whether id is already in the earned list.
func (s *GameSettings) HasBadge(id string) bool {
	return slices.Contains(s.EarnedBadges, id)
}

// Credit adds points to the wallet.
func (s *GameSettings) Credit(points int) {
	s.WalletBalance += points
}

// Debit removes points from the wallet without going below zero.
func (s *GameSettings) Debit(points int) {
	s.WalletBalance = max(0, s.WalletBalance-points)
}

// BadgeDef is a static badge definition. Only the earned id list is stored.
type BadgeDef struct {
	ID          string
	Name        string
	Description string
	Color       string
	Kind        BadgeKind
	Threshold   int
	DomainName  string // domain_tasks only
}
