package contract

import "github.com/alexanderramin/grindstone/internal/app"

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Progress    int    `json:"progress"`
	Earned      bool   `json:"earned"`
}

type LegacyResponse struct {
	Streak        int            `json:"streak"`
	LongestStreak int            `json:"longestStreak"`
	EarnedIDs     []string       `json:"earnedIds"`
	NewlyEarned   []string       `json:"newlyEarned"`
	Wallet        int            `json:"wallet"`
	BadgeProgress map[string]int `json:"badgeProgress"`
	Badges        []Badge        `json:"badges"`
	Recent        []HistoryDay   `json:"recent"`
}

func FromLegacy(v *app.LegacyView) LegacyResponse {
	out := LegacyResponse{
		Streak:        v.Streak,
		LongestStreak: v.LongestStreak,
		EarnedIDs:     []string{},
		NewlyEarned:   []string{},
		Wallet:        v.WalletBalance,
		BadgeProgress: make(map[string]int, len(v.Badges)),
		Badges:        make([]Badge, 0, len(v.Badges)),
		Recent:        FromHistory(v.Recent),
	}
	out.NewlyEarned = append(out.NewlyEarned, v.NewlyEarned...)
	for _, b := range v.Badges {
		out.BadgeProgress[b.Badge.ID] = b.Progress
		if b.Earned {
			out.EarnedIDs = append(out.EarnedIDs, b.Badge.ID)
		}
		out.Badges = append(out.Badges, Badge{
			ID:          b.Badge.ID,
			Name:        b.Badge.Name,
			Description: b.Badge.Description,
			Color:       b.Badge.Color,
			Progress:    b.Progress,
			Earned:      b.Earned,
		})
	}
	return out
}
