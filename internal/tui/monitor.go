package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arijiittt/kalp-airdrop/internal/callstate"
)

// StateMsg carries a tracker snapshot into the TUI
type StateMsg callstate.Snapshot

// ResultMsg carries the rendered result of a completed operation
type ResultMsg struct {
	Result string
}

// LogMsg appends a line to the log panel
type LogMsg struct {
	Message string
}

// DoneMsg tells the TUI the operation is over and it can exit
type DoneMsg struct{}

type Model struct {
	operation string
	snapshot  callstate.Snapshot
	result    string
	logs      []string
	spinner   spinner.Model
	width     int
	height    int
	quit      bool
}

func NewModel(operation string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		operation: operation,
		logs:      []string{},
		spinner:   sp,
		width:     80,
		height:    24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StateMsg:
		m.snapshot = callstate.Snapshot(msg)

	case ResultMsg:
		m.result = msg.Result

	case LogMsg:
		m.logs = append(m.logs, fmt.Sprintf("[%s] %s",
			time.Now().Format("15:04:05"), msg.Message))
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case DoneMsg:
		m.quit = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quit {
		return "Shutting down...\n"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	s.WriteString(headerStyle.Render("🪂 Kalp Airdrop"))
	s.WriteString("\n\n")

	statusSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1).
		Width(m.width - 2)

	var status strings.Builder
	statusLine := fmt.Sprintf("%s %-14s %-10s", stateIcon(m.snapshot.State), m.operation, m.snapshot.State)
	if m.snapshot.Loading() {
		statusLine += " " + m.spinner.View()
	}

	stateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(stateColor(m.snapshot.State)))
	status.WriteString(stateStyle.Render(statusLine) + "\n")

	if m.snapshot.Err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		status.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.snapshot.Err)) + "\n")
	} else if m.result != "" {
		resultStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
		status.WriteString(resultStyle.Render(m.result) + "\n")
	}

	s.WriteString(statusSectionStyle.Render(status.String()))
	s.WriteString("\n\n")

	logSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(m.width - 2).
		Height(8)

	var logSection strings.Builder
	logSection.WriteString("📝 Recent Logs\n")
	for _, log := range m.logs {
		logSection.WriteString(log + "\n")
	}

	s.WriteString(logSectionStyle.Render(logSection.String()))
	s.WriteString("\n\n")

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	s.WriteString(footerStyle.Render("Press 'q' to quit | Logs: logs/kalp-airdrop_*.log"))

	return s.String()
}

func stateIcon(state callstate.State) string {
	switch state {
	case callstate.StateIdle:
		return "⏸"
	case callstate.StatePending:
		return "🔄"
	case callstate.StateSucceeded:
		return "✅"
	case callstate.StateFailed:
		return "❌"
	default:
		return "❓"
	}
}

func stateColor(state callstate.State) string {
	switch state {
	case callstate.StateIdle:
		return "244"
	case callstate.StateSucceeded:
		return "82"
	case callstate.StateFailed:
		return "196"
	default:
		return "39"
	}
}
