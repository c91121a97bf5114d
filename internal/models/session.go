package models

import (
	"errors"
	"fmt"
	"time"
)

// ClockLayout is the 12-hour clock format used for every displayed time
const ClockLayout = "03:04 PM"

// ErrUnset is returned when a derived value needs a timestamp that was never recorded
var ErrUnset = errors.New("timestamp not set")

// Field identifies one of the four timestamps of a session
type Field int

const (
	StudyStart Field = iota
	StudyEnd
	GameStart
	GameEnd
)

// Fields lists every session field in recording order
var Fields = []Field{StudyStart, StudyEnd, GameStart, GameEnd}

func (f Field) String() string {
	switch f {
	case StudyStart:
		return "study_start"
	case StudyEnd:
		return "study_end"
	case GameStart:
		return "game_start"
	case GameEnd:
		return "game_end"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// UnsetFieldError reports which field was missing
type UnsetFieldError struct {
	Field Field
}

func (e *UnsetFieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, ErrUnset)
}

func (e *UnsetFieldError) Unwrap() error {
	return ErrUnset
}

// Session represents one study + game cycle
type Session struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ArchivedAt time.Time `json:"archived_at"`

	StudyStart *time.Time `json:"study_start"`
	StudyEnd   *time.Time `json:"study_end"`
	GameStart  *time.Time `json:"game_start"`
	GameEnd    *time.Time `json:"game_end"`
}

// Get returns the timestamp stored for f, or nil if it was never set
func (s Session) Get(f Field) *time.Time {
	switch f {
	case StudyStart:
		return s.StudyStart
	case StudyEnd:
		return s.StudyEnd
	case GameStart:
		return s.GameStart
	case GameEnd:
		return s.GameEnd
	}
	return nil
}

// Set records t for f, replacing any earlier value
func (s *Session) Set(f Field, t time.Time) {
	switch f {
	case StudyStart:
		s.StudyStart = &t
	case StudyEnd:
		s.StudyEnd = &t
	case GameStart:
		s.GameStart = &t
	case GameEnd:
		s.GameEnd = &t
	}
}

// IsComplete reports whether all four timestamps are set
func (s Session) IsComplete() bool {
	for _, f := range Fields {
		if s.Get(f) == nil {
			return false
		}
	}
	return true
}

// StudyDuration returns study time in hours. Negative if the end precedes the start.
func (s Session) StudyDuration() (float64, error) {
	return s.hoursBetween(StudyStart, StudyEnd)
}

// GameDuration returns game time in hours
func (s Session) GameDuration() (float64, error) {
	return s.hoursBetween(GameStart, GameEnd)
}

// WeightedScore is study hours minus twice the game hours
func (s Session) WeightedScore() (float64, error) {
	study, err := s.StudyDuration()
	if err != nil {
		return 0, err
	}
	game, err := s.GameDuration()
	if err != nil {
		return 0, err
	}
	return study - 2*game, nil
}

// Readable formats the session as "Study: 09:00 AM–11:00 AM, Game: 11:00 AM–12:00 PM"
func (s Session) Readable() (string, error) {
	var clock [4]string
	for i, f := range Fields {
		t := s.Get(f)
		if t == nil {
			return "", &UnsetFieldError{Field: f}
		}
		clock[i] = t.Format(ClockLayout)
	}
	return fmt.Sprintf("Study: %s–%s, Game: %s–%s", clock[0], clock[1], clock[2], clock[3]), nil
}

func (s Session) hoursBetween(from, to Field) (float64, error) {
	start := s.Get(from)
	if start == nil {
		return 0, &UnsetFieldError{Field: from}
	}
	end := s.Get(to)
	if end == nil {
		return 0, &UnsetFieldError{Field: to}
	}
	return end.Sub(*start).Hours(), nil
}
