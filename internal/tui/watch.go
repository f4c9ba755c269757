package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arijiittt/kalp-airdrop/internal/callstate"
	"github.com/arijiittt/kalp-airdrop/internal/logger"
)

// Monitor renders one tracked gateway operation in a terminal UI
type Monitor struct {
	operation string
	tracker   *callstate.Tracker
	program   *tea.Program
}

func NewMonitor(operation string, tracker *callstate.Tracker) *Monitor {
	return &Monitor{
		operation: operation,
		tracker:   tracker,
	}
}

// AddLog appends a line to the TUI's log panel
func (m *Monitor) AddLog(message string) {
	if m.program != nil {
		m.program.Send(LogMsg{
			Message: message,
		})
	}
}

// Run executes op while rendering tracker updates. It blocks until the
// operation finishes and the UI exits.
func (m *Monitor) Run(op func() (string, error)) error {
	model := NewModel(m.operation)
	m.program = tea.NewProgram(model, tea.WithAltScreen())

	updates, unsubscribe := m.tracker.Subscribe()
	go func() {
		for snapshot := range updates {
			m.program.Send(StateMsg(snapshot))
		}
	}()

	go func() {
		defer unsubscribe()

		m.AddLog(fmt.Sprintf("Starting %s...", m.operation))
		result, err := op()
		if err != nil {
			logger.Error("%s failed: %v", m.operation, err)
			m.AddLog(fmt.Sprintf("❌ %s failed: %v", m.operation, err))
		} else {
			m.program.Send(ResultMsg{Result: result})
			m.AddLog(fmt.Sprintf("✅ %s completed", m.operation))
		}

		// Leave the final frame on screen before exiting
		time.Sleep(1200 * time.Millisecond)
		m.program.Send(DoneMsg{})
	}()

	if _, err := m.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
