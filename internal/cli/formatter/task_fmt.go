package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/domain"
)

// FormatTaskList renders tasks with their domain names. domainNames maps
// domain id to name.
func FormatTaskList(tasks []*domain.Task, domainNames map[string]string) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		state := StyleGreen.Render("active")
		if !t.IsActive {
			state = Dim("inactive")
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Title,
			StylePurple.Render(domainNames[t.DomainID]),
			Points(t.Points),
			t.Difficulty.String(),
			state,
		})
	}
	return RenderTable([]string{"ID", "TITLE", "DOMAIN", "POINTS", "DIFFICULTY", "STATE"}, rows)
}

// FormatDomainList renders domains in rank order.
func FormatDomainList(domains []*domain.Domain) string {
	if len(domains) == 0 {
		return Dim("No domains. Run `grind seed` to create the defaults.") + "\n"
	}
	rows := make([][]string, 0, len(domains))
	for _, d := range domains {
		state := StyleGreen.Render("active")
		if !d.IsActive {
			state = Dim("inactive")
		}
		rows = append(rows, []string{fmt.Sprintf("%d", d.Order), Swatch(d.Color, "● "+d.Name), Dim(d.Color), state})
	}
	return RenderTable([]string{"#", "DOMAIN", "COLOR", "STATE"}, rows)
}

func FormatToggle(o *app.ToggleOutcome) string {
	if o.Completed {
		return fmt.Sprintf("%s %s %s  %s %s\n",
			StyleGreen.Render("✔"), o.Task.Title, StyleGold.Render(fmt.Sprintf("+%d", o.Delta)),
			Dim("wallet"), Points(o.WalletBalance))
	}
	return fmt.Sprintf("%s %s %s  %s %s\n",
		Dim("↺"), o.Task.Title, StyleRed.Render(fmt.Sprintf("%d", o.Delta)),
		Dim("wallet"), Points(o.WalletBalance))
}

// FormatSessionOutcome renders the debrief result.
func FormatSessionOutcome(o *app.SessionOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold(o.Task.Title))
	fmt.Fprintf(&b, "%s %s   %s %s   %s %d/10   %s %.1f\n",
		Dim("time"), FormatMinutes(o.Task.ActualDuration),
		Dim("difficulty"), o.Task.Difficulty.String(),
		Dim("resistance"), o.Task.ResistanceLevel,
		Dim("recall"), o.Task.RecallAccuracy,
	)
	fmt.Fprintf(&b, "\n%s %s\n", StyleGold.Render(fmt.Sprintf("+%d", o.Points)), Dim("points earned"))
	fmt.Fprintf(&b, "%s %s\n", Dim("wallet"), Points(o.WalletBalance))
	return RenderBox("Session complete", b.String())
}
