// Package tui renders the live timer dashboard. The per-second ticker is
// level triggered: it arms while any timer is counting down and disarms as
// soon as none is, so an idle dashboard costs no wake-ups.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ckramer/tyke/internal/engine"
	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("220"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0)
)

type TickMsg time.Time

// A tick arriving more than this long after the previous one means delivery
// stalled (machine asleep, terminal suspended); the elapsed time must be
// reconciled from the wall clock, not counted one second at a time.
const staleTickGap = 2 * time.Second

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type Model struct {
	engine   *engine.Engine
	bars     map[string]progress.Model
	cursor   int
	ticking  bool
	lastTick time.Time
	badge    string
	width    int
}

func NewModel(e *engine.Engine) Model {
	// The process may have been suspended since the engine loaded
	e.Reconcile()
	return Model{
		engine:  e,
		bars:    make(map[string]progress.Model),
		ticking: e.HasRunnable(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.ticking {
		return tick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		m.ticking = false
		now := time.Time(msg)
		if !m.lastTick.IsZero() && now.Sub(m.lastTick) > staleTickGap {
			m.engine.Reconcile()
		} else {
			m.engine.Tick()
		}
		m.lastTick = now
		if badge := m.engine.ConsumeNewBadge(); badge != "" {
			m.badge = badge
		}
		return m.rearm()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.engine.Timers())-1 {
				m.cursor++
			}
		case " ", "p":
			if t, ok := m.selected(); ok {
				if t.Paused {
					m.engine.Resume(t.ID)
				} else {
					m.engine.Pause(t.ID)
				}
			}
			return m.rearm()
		case "r":
			if t, ok := m.selected(); ok {
				m.engine.Reset(t.ID)
			}
			return m.rearm()
		case "d", "backspace":
			if t, ok := m.selected(); ok {
				m.engine.Remove(t.ID)
				if m.cursor >= len(m.engine.Timers()) && m.cursor > 0 {
					m.cursor--
				}
			}
			return m.rearm()
		case "enter":
			// Dismiss the badge popup
			m.badge = ""
		}
	}
	return m, nil
}

// rearm keeps exactly one pending tick while a timer is counting down.
func (m Model) rearm() (tea.Model, tea.Cmd) {
	if m.engine.HasRunnable() && !m.ticking {
		m.ticking = true
		return m, tick()
	}
	return m, nil
}

func (m Model) selected() (models.Timer, bool) {
	timers := m.engine.Timers()
	if m.cursor < 0 || m.cursor >= len(timers) {
		return models.Timer{}, false
	}
	return timers[m.cursor], true
}

func (m Model) View() string {
	s := titleStyle.Render("tyke") + "\n"

	timers := m.engine.Timers()
	if len(timers) == 0 {
		s += stateStyle.Render("No timers. Start one with 'tyke start'.") + "\n"
	}

	for i, t := range timers {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		bar, ok := m.bars[t.ID]
		if !ok {
			bar = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
			m.bars[t.ID] = bar
		}
		pct := 0.0
		if t.TotalSeconds > 0 {
			pct = 1 - float64(t.RemainingSeconds)/float64(t.TotalSeconds)
		}

		state := ""
		switch {
		case t.Completed():
			state = doneStyle.Render("done!")
		case t.Paused:
			state = stateStyle.Render("paused")
		}

		s += fmt.Sprintf("%s%s  %s  %s\n", cursor, labelStyle.Render(t.Label),
			utils.FormatClock(t.RemainingSeconds), state)
		s += "  " + bar.ViewAs(pct) + "\n"
	}

	if m.badge != "" {
		if b, ok := models.BadgeByID(m.badge); ok {
			s += "\n" + badgeStyle.Render(fmt.Sprintf("New badge: %s! %s", b.Name, b.Description)) + "\n"
		}
	}

	s += helpStyle.Render("space pause/resume · r reset · d delete · q quit")
	return s
}

// Run drives the dashboard until the user quits.
func Run(e *engine.Engine) error {
	p := tea.NewProgram(NewModel(e), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
