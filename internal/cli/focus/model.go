// Package focus is the full-screen timer shown between session setup and the
// debrief. It measures wall time spent focusing, excluding pauses.
package focus

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/grindstone/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Pause  key.Binding
	Finish key.Binding
	Abort  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Finish, k.Abort}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeys() keyMap {
	return keyMap{
		Pause:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		Finish: key.NewBinding(key.WithKeys("enter", "f"), key.WithHelp("enter", "finish")),
		Abort:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "abort")),
	}
}

// Result is what the timer hands to the debrief.
type Result struct {
	Elapsed  time.Duration
	Finished bool
}

// Minutes converts elapsed focus time into whole session minutes, rounding
// partial minutes up. Any session counts as at least one minute.
func (r Result) Minutes() int {
	return Minutes(r.Elapsed)
}

func Minutes(d time.Duration) int {
	m := int(math.Ceil(d.Seconds() / 60))
	return max(m, 1)
}

type Option func(*Model)

// WithClock replaces the wall clock. Tests use it to move time.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

type Model struct {
	title   string
	planned int

	sw   stopwatch.Model
	help help.Model
	keys keyMap

	now         func() time.Time
	resumedAt   time.Time
	accumulated time.Duration
	paused      bool
	finished    bool
	aborted     bool
}

// New starts the clock immediately. planned is the session's planned length
// in minutes, shown as a target.
func New(title string, planned int, opts ...Option) Model {
	m := Model{
		title:   title,
		planned: planned,
		sw:      stopwatch.NewWithInterval(time.Second),
		help:    help.New(),
		keys:    defaultKeys(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.resumedAt = m.now()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.sw.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.finished || m.aborted {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Abort):
			m.aborted = true
			m.freeze()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Finish):
			m.finished = true
			m.freeze()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if m.paused {
				m.paused = false
				m.resumedAt = m.now()
				return m, m.sw.Start()
			}
			m.freeze()
			m.paused = true
			return m, m.sw.Stop()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.sw, cmd = m.sw.Update(msg)
	return m, cmd
}

// freeze folds the running span into the accumulated total.
func (m *Model) freeze() {
	if !m.paused {
		m.accumulated += m.now().Sub(m.resumedAt)
		m.resumedAt = m.now()
	}
}

// Elapsed is the focus time so far, excluding pauses.
func (m Model) Elapsed() time.Duration {
	if m.paused || m.finished || m.aborted {
		return m.accumulated
	}
	return m.accumulated + m.now().Sub(m.resumedAt)
}

func (m Model) Paused() bool  { return m.paused }
func (m Model) Aborted() bool { return m.aborted }

func (m Model) Result() Result {
	return Result{Elapsed: m.Elapsed(), Finished: m.finished}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Focus"))
	b.WriteString("\n\n")
	b.WriteString(formatter.Bold(m.title))
	b.WriteString("\n\n")

	elapsed := m.Elapsed().Truncate(time.Second)
	clock := fmt.Sprintf("%02d:%02d:%02d", int(elapsed.Hours()), int(elapsed.Minutes())%60, int(elapsed.Seconds())%60)
	if m.paused {
		b.WriteString(formatter.StyleYellow.Render(clock + "  paused"))
	} else {
		b.WriteString(formatter.StyleGreen.Render(clock))
	}
	b.WriteString("\n")

	if m.planned > 0 {
		pct := int(elapsed.Minutes() * 100 / float64(m.planned))
		fmt.Fprintf(&b, "%s %s\n", formatter.RenderProgress(pct, 24), formatter.Dim("of "+formatter.FormatMinutes(m.planned)))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Run shows the timer on the terminal until the user finishes or aborts.
func Run(ctx context.Context, title string, planned int) (Result, error) {
	p := tea.NewProgram(New(title, planned), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("focus timer: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("focus timer: unexpected model %T", final)
	}
	return m.Result(), nil
}
