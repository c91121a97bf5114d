package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studylog/internal/driver"
	"github.com/balkashynov/studylog/internal/models"
	"github.com/balkashynov/studylog/internal/render"
)

// TrackerModel is the interactive prompt: a scrolling log of replies, the
// session in progress, and a text input for commands
type TrackerModel struct {
	width  int
	height int

	dispatcher *driver.Dispatcher
	input      textinput.Model
	vp         viewport.Model

	lines    []string
	now      time.Time
	quitting bool
}

// clockTickMsg is sent every second to refresh the running clock
type clockTickMsg time.Time

// NewTrackerModel creates a prompt bound to d
func NewTrackerModel(d *driver.Dispatcher) TrackerModel {
	input := textinput.New()
	input.Placeholder = "study_start · study_end · game_start · game_end · history · help"
	input.Prompt = "› "
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	input.CharLimit = 64
	input.Focus()

	return TrackerModel{
		dispatcher: d,
		input:      input,
		vp:         viewport.New(0, 0),
		now:        time.Now(),
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// Init starts the cursor blink and the clock
func (m TrackerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, clockTick())
}

// Update handles messages
func (m TrackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case clockTickMsg:
		m.now = time.Time(msg)
		if !m.quitting {
			cmds = append(cmds, clockTick())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			raw := m.input.Value()
			m.input.Reset()

			reply := m.dispatcher.Handle(raw)
			m.appendReply(raw, reply)
			if reply.Quit {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}

	var tiCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	cmds = append(cmds, tiCmd)

	// viewport key handling would steal keystrokes from the input
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		var vpCmd tea.Cmd
		m.vp, vpCmd = m.vp.Update(msg)
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// appendReply echoes the input and its reply into the log
func (m *TrackerModel) appendReply(raw string, reply driver.Reply) {
	if strings.TrimSpace(raw) == "" {
		return
	}

	echo := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	m.lines = append(m.lines, echo.Render("› "+strings.TrimSpace(raw)))

	if reply.Text != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		if reply.Text == render.InvalidCommand {
			style = style.Foreground(lipgloss.Color(ColorError))
		}
		m.lines = append(m.lines, style.Render(reply.Text))
	}
	if reply.Err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		m.lines = append(m.lines, errStyle.Render(fmt.Sprintf("Error: %v", reply.Err)))
	}
	m.lines = append(m.lines, "")

	m.vp.SetContent(strings.Join(m.lines, "\n"))
	m.vp.GotoBottom()
}

func (m *TrackerModel) resize() {
	logWidth := m.width
	if m.width >= 90 {
		logWidth = m.width/2 - 2
	}
	m.vp.Width = logWidth
	// header, gap, input, help bar
	m.vp.Height = max(m.height-5, 1)
	m.input.Width = max(logWidth-4, 10)
	m.vp.SetContent(strings.Join(m.lines, "\n"))
}

// View renders the prompt
func (m TrackerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Width(m.width).
		Align(lipgloss.Center).
		Render("📚 STUDYLOG 🎮")

	left := lipgloss.JoinVertical(lipgloss.Left, m.vp.View(), m.input.View())

	var content string
	if m.width < 90 {
		// Narrow view: log and input only
		content = left
	} else {
		leftWidth := m.width/2 - 2
		rightWidth := m.width - leftWidth - 2
		leftPanel := lipgloss.NewStyle().Width(leftWidth).Render(left)
		content = lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, "  ", m.renderSessionPanel(rightWidth, m.height-3))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", content, m.renderHelpBar())
}

// renderSessionPanel shows the four timestamps and a clock for the running activity
func (m TrackerModel) renderSessionPanel(width, height int) string {
	current := m.dispatcher.Tracker().Current()
	loc := m.dispatcher.Tracker().Location()

	var components []string

	if label, since, color, ok := runningActivity(current); ok {
		title := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentBright)).
			Bold(true).
			Render(label)
		components = append(components, title, renderBigClock(m.now.Sub(since), color))
	} else {
		idle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Italic(true).
			Render("Nothing running")
		components = append(components, idle)
	}

	labels := []string{"Study start", "Study end", "Game start", "Game end"}
	var rows []string
	for i, f := range models.Fields {
		value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("--:-- --")
		if t := current.Get(f); t != nil {
			value = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render(t.In(loc).Format(models.ClockLayout))
		}
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Width(13).Render(labels[i])
		rows = append(rows, label+value)
	}
	components = append(components, strings.Join(rows, "\n"))

	return lipgloss.NewStyle().
		Width(width-2).
		Height(max(height-2, 1)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

// runningActivity picks the activity whose start has no later end. When both
// are open, the one started last wins.
func runningActivity(s models.Session) (label string, since time.Time, color string, ok bool) {
	open := func(start, end *time.Time) bool {
		return start != nil && (end == nil || end.Before(*start))
	}

	if open(s.StudyStart, s.StudyEnd) {
		label, since, color, ok = "📚 STUDYING", *s.StudyStart, ColorStudy, true
	}
	if open(s.GameStart, s.GameEnd) && (!ok || s.GameStart.After(since)) {
		label, since, color, ok = "🎮 GAMING", *s.GameStart, ColorGame, true
	}
	return label, since, color, ok
}

// renderHelpBar renders the help bar at the bottom
func (m TrackerModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("enter run command · pgup/pgdn scroll · quit or ctrl+c exit")
}
