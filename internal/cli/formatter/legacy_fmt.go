package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/domain"
)

// FormatLegacy renders streaks, the badge cabinet and recent history.
func FormatLegacy(v *app.LegacyView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s   %s %d   %s %d   %s %s\n\n",
		Dim("streak"), StyleGold.Render(fmt.Sprintf("%d", v.Streak)),
		Dim("best"), v.LongestStreak,
		Dim("active days"), v.ActiveDays,
		Dim("wallet"), StyleGold.Render(Points(v.WalletBalance)),
	)

	for _, id := range v.NewlyEarned {
		fmt.Fprintf(&b, "%s %s\n", StyleGold.Render("★ Badge unlocked:"), badgeName(v.Badges, id))
	}
	if len(v.NewlyEarned) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(Header("Badges"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(v.Badges))
	for _, bp := range v.Badges {
		mark := Dim("○")
		name := bp.Badge.Name
		if bp.Earned {
			mark = Swatch(bp.Badge.Color, "★")
			name = Swatch(bp.Badge.Color, name)
		}
		rows = append(rows, []string{mark, name, RenderProgress(bp.Progress, 10), Dim(bp.Badge.Description)})
	}
	b.WriteString(RenderTable([]string{"", "BADGE", "PROGRESS", ""}, rows))

	if len(v.Recent) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatHistory(v.Recent))
	}
	return b.String()
}

// FormatHistory renders frozen days as a bar chart, oldest at the top.
func FormatHistory(days []*domain.DailyHistory) string {
	var b strings.Builder
	b.WriteString(Header("History"))
	b.WriteString("\n")
	if len(days) == 0 {
		b.WriteString(Dim("No history yet."))
		b.WriteString("\n")
		return b.String()
	}

	peak := 0
	for _, d := range days {
		peak = max(peak, d.TotalPoints)
	}
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		fmt.Fprintf(&b, "%s  %s  %s %s\n",
			Dim(d.Day.String()),
			RenderBar(d.TotalPoints, peak, 20),
			Points(d.TotalPoints),
			Dim(fmt.Sprintf("(%d done)", d.TasksCompleted)),
		)
	}
	return b.String()
}

func badgeName(badges []app.BadgeProgress, id string) string {
	for _, bp := range badges {
		if bp.Badge.ID == id {
			return bp.Badge.Name
		}
	}
	return id
}
