package tracker

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/balkashynov/studylog/internal/models"
)

// DefaultTimezone is used when no timezone is configured
const DefaultTimezone = "America/New_York"

// DefaultWindow is how many recent sessions a summary lists
const DefaultWindow = 5

// Clock returns the current instant
type Clock func() time.Time

// History is the append-only archive of completed sessions
type History interface {
	// Append stores s at the end of the archive and assigns its ID
	Append(s *models.Session) error
	// Recent returns up to n of the newest sessions, oldest first
	Recent(n int) ([]models.Session, error)
	// All returns every archived session in completion order
	All() ([]models.Session, error)
}

// Options configures a Tracker. Zero values fall back to defaults.
type Options struct {
	Location *time.Location
	Clock    Clock
	History  History
	Window   int
	Logger   *log.Logger
}

// Event describes what a recording action changed
type Event struct {
	Field    models.Field
	At       time.Time
	Archived bool
	// Session is the archived session when Archived is set
	Session models.Session
}

// Summary is the result of HistorySummary
type Summary struct {
	Window int
	Recent []models.Session
	Count  int
	Total  float64
}

// Tracker owns the in-progress session and the history it is archived into.
// It is not safe for concurrent use.
type Tracker struct {
	loc     *time.Location
	clock   Clock
	history History
	window  int
	logger  *log.Logger

	current *models.Session
}

// New creates a tracker with an empty current session
func New(opts Options) *Tracker {
	t := &Tracker{
		loc:     opts.Location,
		clock:   opts.Clock,
		history: opts.History,
		window:  opts.Window,
		logger:  opts.Logger,
		current: &models.Session{},
	}
	if t.loc == nil {
		t.loc = time.UTC
		if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
			t.loc = loc
		}
	}
	if t.clock == nil {
		t.clock = time.Now
	}
	if t.history == nil {
		t.history = NewMemoryHistory()
	}
	if t.window <= 0 {
		t.window = DefaultWindow
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	return t
}

// Location returns the timezone every timestamp is recorded in
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// Current returns a copy of the in-progress session
func (t *Tracker) Current() models.Session {
	return *t.current
}

// StudyStart records the start of studying
func (t *Tracker) StudyStart() Event {
	return t.set(models.StudyStart)
}

// StudyEnd records the end of studying
func (t *Tracker) StudyEnd() Event {
	return t.set(models.StudyEnd)
}

// GameStart records the start of gaming
func (t *Tracker) GameStart() Event {
	return t.set(models.GameStart)
}

// GameEnd records the end of gaming and archives the session once it is complete
func (t *Tracker) GameEnd() (Event, error) {
	ev := t.set(models.GameEnd)
	if !t.current.IsComplete() {
		return ev, nil
	}

	done := *t.current
	done.ArchivedAt = ev.At
	if err := t.history.Append(&done); err != nil {
		// keep the session current so a later game_end can retry
		return ev, fmt.Errorf("failed to archive session: %w", err)
	}
	t.current = &models.Session{}

	ev.Archived = true
	ev.Session = done
	t.logger.Info("session archived", "id", done.ID)
	return ev, nil
}

// Record dispatches to the action for f
func (t *Tracker) Record(f models.Field) (Event, error) {
	if f == models.GameEnd {
		return t.GameEnd()
	}
	return t.set(f), nil
}

// set stamps field f of the current session with now, overwriting any earlier value
func (t *Tracker) set(f models.Field) Event {
	now := t.clock().In(t.loc)
	t.current.Set(f, now)
	t.logger.Debug("recorded timestamp", "field", f, "at", now.Format(time.RFC3339))
	return Event{Field: f, At: now}
}

// HistorySummary returns the most recent sessions and the weighted score total over the whole history
func (t *Tracker) HistorySummary() (Summary, error) {
	all, err := t.history.All()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load history: %w", err)
	}

	var total float64
	for i := range all {
		score, err := all[i].WeightedScore()
		if err != nil {
			return Summary{}, fmt.Errorf("session #%d: %w", all[i].ID, err)
		}
		total += score
	}

	recent, err := t.history.Recent(t.window)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load recent sessions: %w", err)
	}

	return Summary{
		Window: t.window,
		Recent: recent,
		Count:  len(all),
		Total:  total,
	}, nil
}
