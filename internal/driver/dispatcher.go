package driver

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/balkashynov/studylog/internal/parser"
	"github.com/balkashynov/studylog/internal/render"
	"github.com/balkashynov/studylog/internal/tracker"
)

// Reply is what the driver should show after one line of input
type Reply struct {
	Command parser.Command
	Text    string
	Err     error
	Quit    bool
}

// Dispatcher routes typed commands to a tracker
type Dispatcher struct {
	tracker *tracker.Tracker
	logger  *log.Logger
}

// NewDispatcher creates a dispatcher for t
func NewDispatcher(t *tracker.Tracker, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{tracker: t, logger: logger}
}

// Tracker returns the tracker commands are dispatched to
func (d *Dispatcher) Tracker() *tracker.Tracker {
	return d.tracker
}

// Handle runs one line of input
func (d *Dispatcher) Handle(input string) Reply {
	cmd := parser.ParseCommand(input)
	reply := Reply{Command: cmd}

	if field, ok := cmd.Field(); ok {
		ev, err := d.tracker.Record(field)
		reply.Text = render.Event(ev)
		reply.Err = err
		return reply
	}

	switch cmd {
	case parser.Empty:
	case parser.History:
		sum, err := d.tracker.HistorySummary()
		if err != nil {
			reply.Err = err
			return reply
		}
		reply.Text, reply.Err = render.Summary(sum)
	case parser.Status:
		reply.Text = render.Status(d.tracker.Current())
	case parser.Help:
		reply.Text = render.Help()
	case parser.Quit:
		reply.Text = render.Goodbye
		reply.Quit = true
	default:
		d.logger.Debug("invalid command", "input", input)
		reply.Text = render.InvalidCommand
	}
	return reply
}
