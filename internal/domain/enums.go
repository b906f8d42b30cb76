package domain

// Difficulty is the planned metabolic cost tier of a session.
type Difficulty int

const (
	DifficultyPassive  Difficulty = 1
	DifficultyActive   Difficulty = 2
	DifficultySystemic Difficulty = 3
)

// Valid reports whether d is one of the three tiers.
func (d Difficulty) Valid() bool {
	return d >= DifficultyPassive && d <= DifficultySystemic
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyPassive:
		return "Passive"
	case DifficultyActive:
		return "Active"
	case DifficultySystemic:
		return "Systemic"
	default:
		return "Unknown"
	}
}

// Recall grades for the post-session explanation check.
const (
	RecallHazy    = 0.5
	RecallPerfect = 1.0
)

// ValidRecall reports whether r is an accepted recall grade.
func ValidRecall(r float64) bool {
	return r == RecallHazy || r == RecallPerfect
}

const (
	MinResistance = 0
	MaxResistance = 10
)

type BadgeKind string

const (
	BadgeStreak      BadgeKind = "streak"
	BadgeDomainTasks BadgeKind = "domain_tasks"
)

type LockState string

const (
	Unlocked LockState = "UNLOCKED"
	Locked   LockState = "LOCKED"
)

// ActivitySource records how a ledger entry was earned.
type ActivitySource string

const (
	SourceToggle  ActivitySource = "toggle"
	SourceSession ActivitySource = "session"
)
