// Package engine holds the pure scoring, streak, badge and lock-gate rules.
// Nothing in this package touches storage or the wall clock.
package engine

import (
	"math"

	"github.com/alexanderramin/grindstone/internal/domain"
)

const (
	// ResistanceBonusThreshold is the reluctance level at which the bonus engages.
	ResistanceBonusThreshold = 8

	// ResistanceBonusMultiplier rewards following through despite high aversion.
	ResistanceBonusMultiplier = 3.0
)

// SessionInputs are the scored facts of one completed work session.
type SessionInputs struct {
	ActualDuration  int // minutes
	Difficulty      domain.Difficulty
	RecallAccuracy  float64
	ResistanceLevel int
}

// ScoreSession returns the weighted units earned by a session:
// duration × difficulty × recall, tripled when resistance is 8 or more,
// rounded half up. Inputs are expected to be clamped by the caller.
func ScoreSession(in SessionInputs) int {
	wu := float64(in.ActualDuration) * float64(in.Difficulty) * in.RecallAccuracy
	if in.ResistanceLevel >= ResistanceBonusThreshold {
		wu *= ResistanceBonusMultiplier
	}
	return roundHalfUp(wu)
}

// ClampDifficulty forces d into the Passive..Systemic range.
func ClampDifficulty(d domain.Difficulty) domain.Difficulty {
	if d < domain.DifficultyPassive {
		return domain.DifficultyPassive
	}
	if d > domain.DifficultySystemic {
		return domain.DifficultySystemic
	}
	return d
}

// ClampResistance forces r into [0, 10].
func ClampResistance(r int) int {
	return min(max(r, domain.MinResistance), domain.MaxResistance)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// NormalizeSession validates the inputs that cannot be repaired and clamps
// the ones the UI already constrains.
func NormalizeSession(in SessionInputs) (SessionInputs, error) {
	if in.ActualDuration <= 0 {
		return in, &ValidationError{Field: "actual duration", Reason: "must be a positive number of minutes"}
	}
	if !domain.ValidRecall(in.RecallAccuracy) {
		return in, &ValidationError{Field: "recall accuracy", Reason: "must be 0.5 or 1.0"}
	}
	in.Difficulty = ClampDifficulty(in.Difficulty)
	in.ResistanceLevel = ClampResistance(in.ResistanceLevel)
	return in, nil
}
