package engine

import (
	"slices"

	"github.com/alexanderramin/grindstone/internal/calendar"
)

// ComputeStreak returns the number of consecutive days with at least one
// completion, anchored at today. When today has no entry yet the chain is
// still alive if yesterday has one, and counting starts there instead.
func ComputeStreak(days []calendar.Day, today calendar.Day) int {
	if len(days) == 0 {
		return 0
	}
	seen := distinctDays(days)

	anchor := today
	if !seen[today] {
		yesterday := today.AddDays(-1)
		if !seen[yesterday] {
			return 0
		}
		anchor = yesterday
	}

	streak := 0
	for check := anchor; seen[check]; check = check.AddDays(-1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest consecutive-day run anywhere in days.
func LongestStreak(days []calendar.Day) int {
	sorted := SortedDistinctDays(days)
	longest, run := 0, 0
	for i, d := range sorted {
		if i > 0 && sorted[i-1].AddDays(1) == d {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// SortedDistinctDays returns the distinct days in ascending order.
func SortedDistinctDays(days []calendar.Day) []calendar.Day {
	seen := distinctDays(days)
	out := make([]calendar.Day, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

func distinctDays(days []calendar.Day) map[calendar.Day]bool {
	seen := make(map[calendar.Day]bool, len(days))
	for _, d := range days {
		seen[d] = true
	}
	return seen
}
