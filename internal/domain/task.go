package domain

import (
	"fmt"
	"time"
)

// Task defaults applied when a task is created without session metadata.
const (
	DefaultDifficulty      = DifficultyActive
	DefaultPlannedDuration = 30
	DefaultTaskPoints      = 1
)

type Task struct {
	ID       string
	DomainID string
	Title    string
	IsActive bool

	// Points is the creation-time estimate until a session is submitted,
	// after which it holds the last session's score.
	Points int

	// Pre-flight
	Difficulty      Difficulty
	ResistanceLevel int
	PlannedDuration int

	// Post-flight
	ActualDuration    int
	RecallAccuracy    float64
	FeynmanReflection string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionResult is the outcome of one completed work session on a task.
type SessionResult struct {
	ActualDuration  int
	Difficulty      Difficulty
	ResistanceLevel int
	RecallAccuracy  float64
	Reflection      string
	Points          int
}

// ApplySession records a completed session on the task. Points always
// reflect the most recent session.
func (t *Task) ApplySession(r SessionResult, now time.Time) error {
	if r.ActualDuration <= 0 {
		return fmt.Errorf("session duration must be positive, got %d", r.ActualDuration)
	}
	if r.Points < 0 {
		return fmt.Errorf("session points must be non-negative, got %d", r.Points)
	}
	t.ActualDuration = r.ActualDuration
	t.Difficulty = r.Difficulty
	t.ResistanceLevel = r.ResistanceLevel
	t.RecallAccuracy = r.RecallAccuracy
	t.FeynmanReflection = r.Reflection
	t.Points = r.Points
	t.UpdatedAt = now
	return nil
}

// ApplyDefaults fills zero-valued session metadata with the standard defaults.
func (t *Task) ApplyDefaults() {
	if !t.Difficulty.Valid() {
		t.Difficulty = DefaultDifficulty
	}
	if t.PlannedDuration <= 0 {
		t.PlannedDuration = DefaultPlannedDuration
	}
	if !ValidRecall(t.RecallAccuracy) {
		t.RecallAccuracy = RecallPerfect
	}
	if t.ResistanceLevel < MinResistance {
		t.ResistanceLevel = MinResistance
	}
	if t.ResistanceLevel > MaxResistance {
		t.ResistanceLevel = MaxResistance
	}
}
