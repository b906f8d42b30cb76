package testutil

import (
	"time"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/google/uuid"
)

// Domain options
type DomainOption func(*domain.Domain)

func WithDomainOrder(i int) DomainOption {
	return func(d *domain.Domain) {
		d.Order = i
	}
}

func WithDomainInactive() DomainOption {
	return func(d *domain.Domain) {
		d.IsActive = false
	}
}

func NewTestDomain(name string, opts ...DomainOption) *domain.Domain {
	d := &domain.Domain{
		ID:       uuid.New().String(),
		Name:     name,
		Color:    "#888888",
		IsActive: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Task options
type TaskOption func(*domain.Task)

func WithPoints(p int) TaskOption {
	return func(t *domain.Task) {
		t.Points = p
	}
}

func WithDifficulty(d domain.Difficulty) TaskOption {
	return func(t *domain.Task) {
		t.Difficulty = d
	}
}

func WithResistance(r int) TaskOption {
	return func(t *domain.Task) {
		t.ResistanceLevel = r
	}
}

func WithTaskInactive() TaskOption {
	return func(t *domain.Task) {
		t.IsActive = false
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

func NewTestTask(domainID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:              uuid.New().String(),
		DomainID:        domainID,
		Title:           title,
		IsActive:        true,
		Points:          domain.DefaultTaskPoints,
		Difficulty:      domain.DefaultDifficulty,
		PlannedDuration: domain.DefaultPlannedDuration,
		RecallAccuracy:  domain.RecallPerfect,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Activity entry options
type EntryOption func(*domain.ActivityEntry)

func WithSource(s domain.ActivitySource) EntryOption {
	return func(e *domain.ActivityEntry) {
		e.Source = s
	}
}

func WithCompletedAt(at time.Time) EntryOption {
	return func(e *domain.ActivityEntry) {
		e.CompletedAt = at
	}
}

func NewTestEntry(taskID string, day calendar.Day, points int, opts ...EntryOption) *domain.ActivityEntry {
	e := &domain.ActivityEntry{
		ID:           uuid.New().String(),
		TaskID:       taskID,
		Day:          day,
		PointsEarned: points,
		Source:       domain.SourceToggle,
		CompletedAt:  day.Time().Add(12 * time.Hour),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
