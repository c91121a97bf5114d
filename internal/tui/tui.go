package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/studylog/internal/driver"
	"github.com/balkashynov/studylog/internal/render"
)

// Run starts the interactive prompt and blocks until the user quits
func Run(d *driver.Dispatcher, out io.Writer) error {
	model := NewTrackerModel(d)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	// The alt screen is gone by now; leave a trace on the normal one
	fmt.Fprintln(out, render.Goodbye)
	return nil
}
