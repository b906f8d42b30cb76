package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/grindstone/internal/cli/formatter"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// grindHuhTheme styles huh forms with the formatter palette.
func grindHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// Setup is collected before the timer starts.
type Setup struct {
	Difficulty int
	Resistance string
}

// Debrief is collected after the timer stops. Minutes comes from the timer
// and is not asked for.
type Debrief struct {
	Minutes    int
	Recall     float64
	Reflection string
}

func difficultyOptions() []huh.Option[int] {
	return []huh.Option[int]{
		huh.NewOption("Passive  (reading, watching)", int(domain.DifficultyPassive)),
		huh.NewOption("Active   (practice, exercises)", int(domain.DifficultyActive)),
		huh.NewOption("Systemic (building, teaching)", int(domain.DifficultySystemic)),
	}
}

func setupForm(s *Setup) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Difficulty").
				Options(difficultyOptions()...).
				Value(&s.Difficulty),
			huh.NewInput().
				Title("Resistance (0-10)").
				Description("How hard was it to start?").
				Placeholder("5").
				Value(&s.Resistance).
				Validate(validateResistance),
		),
	).WithTheme(grindHuhTheme()).WithShowHelp(false)
}

func debriefForm(d *Debrief) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Debrief").
				Description(fmt.Sprintf("You focused for %s.", formatter.FormatMinutes(d.Minutes))),
			huh.NewSelect[float64]().
				Title("Could you explain it simply?").
				Options(
					huh.NewOption("Yes, clearly", domain.RecallPerfect),
					huh.NewOption("Hazy", domain.RecallHazy),
				).
				Value(&d.Recall),
			huh.NewText().
				Title("Reflection (optional)").
				Value(&d.Reflection),
		),
	).WithTheme(grindHuhTheme()).WithShowHelp(false)
}

func runDebriefForm(d *Debrief) error {
	return debriefForm(d).Run()
}

func confirmForm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(huh.NewConfirm().Title(title).Value(&ok)),
	).WithTheme(grindHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

func validateResistance(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < domain.MinResistance || n > domain.MaxResistance {
		return fmt.Errorf("enter a number from %d to %d", domain.MinResistance, domain.MaxResistance)
	}
	return nil
}

// parseResistance reads a validated resistance field; blank means the
// middle of the scale.
func parseResistance(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 5
	}
	return n
}
