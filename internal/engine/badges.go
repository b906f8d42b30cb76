package engine

import (
	"math"
	"slices"

	"github.com/alexanderramin/grindstone/internal/domain"
)

// DefaultBadges is the built-in badge catalog.
func DefaultBadges() []domain.BadgeDef {
	return []domain.BadgeDef{
		{ID: "streak_7", Name: "Beast Star I", Description: "7 Day Streak. Consistency is the key.",
			Color: "#f59e0b", Kind: domain.BadgeStreak, Threshold: 7},
		{ID: "streak_30", Name: "Beast Star III", Description: "30 Day Streak. You are a machine.",
			Color: "#ef4444", Kind: domain.BadgeStreak, Threshold: 30},
		{ID: "streak_45", Name: "Soldier Star I", Description: "45 Day Streak. Discipline is your nature.",
			Color: "#a855f7", Kind: domain.BadgeStreak, Threshold: 45},
		{ID: "finance_10", Name: "Miser Star I", Description: "Complete 10 Financial Tasks.",
			Color: "#22c55e", Kind: domain.BadgeDomainTasks, Threshold: 10, DomainName: "Financial"},
		{ID: "physical_10", Name: "Iron Body I", Description: "Complete 10 Physical Tasks.",
			Color: "#e11d48", Kind: domain.BadgeDomainTasks, Threshold: 10, DomainName: "Physical"},
		{ID: "spiritual_10", Name: "Monk Mind I", Description: "Complete 10 Spiritual Tasks.",
			Color: "#8b5cf6", Kind: domain.BadgeDomainTasks, Threshold: 10, DomainName: "Spiritual"},
	}
}

// BadgeEvaluation is the derived badge state for one evaluation.
type BadgeEvaluation struct {
	// Progress maps badge id to a 0-100 percentage.
	Progress map[string]int
	// Earned is the previous earned list with newly qualified ids appended.
	Earned []string
	// NewlyEarned lists ids that qualified for the first time in this call.
	NewlyEarned []string
}

// Changed reports whether the earned list grew and must be persisted.
func (e BadgeEvaluation) Changed() bool {
	return len(e.NewlyEarned) > 0
}

// EvaluateBadges derives progress for every definition and unions newly
// qualified ids into the earned list. domainCounts is keyed by domain name; a
// badge whose domain is absent has no progress and never qualifies. Earned
// ids are never removed.
func EvaluateBadges(defs []domain.BadgeDef, streak int, domainCounts map[string]int, earned []string) BadgeEvaluation {
	eval := BadgeEvaluation{
		Progress: make(map[string]int, len(defs)),
		Earned:   slices.Clone(earned),
	}
	if eval.Earned == nil {
		eval.Earned = []string{}
	}

	for _, def := range defs {
		progress, qualified := badgeProgress(def, streak, domainCounts)
		eval.Progress[def.ID] = ProgressPercent(progress, def.Threshold)

		if qualified && !slices.Contains(eval.Earned, def.ID) {
			eval.Earned = append(eval.Earned, def.ID)
			eval.NewlyEarned = append(eval.NewlyEarned, def.ID)
		}
	}
	return eval
}

func badgeProgress(def domain.BadgeDef, streak int, domainCounts map[string]int) (int, bool) {
	switch def.Kind {
	case domain.BadgeStreak:
		return streak, streak >= def.Threshold
	case domain.BadgeDomainTasks:
		count, ok := domainCounts[def.DomainName]
		if !ok {
			return 0, false
		}
		return count, count >= def.Threshold
	default:
		return 0, false
	}
}

// ProgressPercent returns round(min(100, 100 × progress / threshold)).
func ProgressPercent(progress, threshold int) int {
	if threshold <= 0 || progress <= 0 {
		return 0
	}
	pct := math.Min(100, 100*float64(progress)/float64(threshold))
	return roundHalfUp(pct)
}
