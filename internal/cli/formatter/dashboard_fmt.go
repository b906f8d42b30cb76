package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindstone/internal/app"
)

// FormatDashboard renders the today screen: lock state, tasks grouped by
// domain, domain balance and the day's totals.
func FormatDashboard(v *app.DashboardView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(v.Today.String()), LockPill(v.Lock.IsLocked()))
	fmt.Fprintf(&b, "%s %s   %s %s   %s %d/%d\n\n",
		Dim("today"), StyleGold.Render(Points(v.TodayPoints)),
		Dim("wallet"), StyleGold.Render(Points(v.WalletBalance)),
		Dim("done"), v.TasksCompleted, len(v.Tasks),
	)

	if len(v.Tasks) == 0 {
		b.WriteString(Dim("No active tasks. Add one with `grind task add`."))
		b.WriteString("\n")
	} else {
		b.WriteString(Header("Tasks"))
		b.WriteString("\n")
		current := ""
		for i, tv := range v.Tasks {
			if tv.DomainName != current {
				current = tv.DomainName
				fmt.Fprintf(&b, "%s\n", Swatch(tv.DomainColor, "● "+current))
			}
			title := tv.Task.Title
			if tv.Completed {
				title = StyleDim.Strikethrough(true).Render(title)
			}
			fmt.Fprintf(&b, "  %2d %s %s %s %s\n",
				i+1, CheckMark(tv.Completed), title, Dim(Points(tv.Task.Points)), TruncID(tv.Task.ID))
		}
	}

	if len(v.Balance) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Balance"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(v.Balance))
		for _, s := range v.Balance {
			rows = append(rows, []string{
				Swatch(s.Domain.Color, s.Domain.Name),
				RenderProgress(int(s.Ratio*100+0.5), 12),
				fmt.Sprintf("%d/%d", s.Earned, s.Total),
			})
		}
		b.WriteString(RenderTable([]string{"DOMAIN", "TODAY", "PTS"}, rows))
	}

	if v.Backfilled > 0 {
		fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("froze %d past day(s) into history", v.Backfilled)))
	}
	return b.String()
}
