package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/balkashynov/studylog/internal/models"
	"github.com/balkashynov/studylog/internal/tracker"
)

func clockAt(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestEventLines(t *testing.T) {
	cases := []struct {
		ev   tracker.Event
		want string
	}{
		{tracker.Event{Field: models.StudyStart, At: clockAt(9, 5)}, "📚 Study started at 09:05 AM"},
		{tracker.Event{Field: models.StudyEnd, At: clockAt(11, 0)}, "📚 Study ended at 11:00 AM"},
		{tracker.Event{Field: models.GameStart, At: clockAt(13, 0)}, "🎮 Game started at 01:00 PM"},
		{tracker.Event{Field: models.GameEnd, At: clockAt(14, 30)}, "🎮 Game ended at 02:30 PM"},
		{
			tracker.Event{
				Field:    models.GameEnd,
				At:       clockAt(14, 30),
				Archived: true,
				Session:  session(clockAt(9, 0), clockAt(11, 0), clockAt(13, 30), clockAt(14, 30)),
			},
			"🎮 Game ended at 02:30 PM\n✅ Session logged. Score: 0.00 hours",
		},
	}

	for _, tc := range cases {
		if got := Event(tc.ev); got != tc.want {
			t.Errorf("Event(%v) = %q, want %q", tc.ev.Field, got, tc.want)
		}
	}
}

func session(studyFrom, studyTo, gameFrom, gameTo time.Time) models.Session {
	var s models.Session
	s.Set(models.StudyStart, studyFrom)
	s.Set(models.StudyEnd, studyTo)
	s.Set(models.GameStart, gameFrom)
	s.Set(models.GameEnd, gameTo)
	return s
}

func TestSummary(t *testing.T) {
	sum := tracker.Summary{
		Window: 5,
		Recent: []models.Session{
			session(clockAt(9, 0), clockAt(12, 0), clockAt(12, 0), clockAt(12, 0)),
			session(clockAt(13, 0), clockAt(13, 30), clockAt(13, 30), clockAt(14, 30)),
		},
		Count: 2,
		Total: 1.5,
	}

	got, err := Summary(sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"📊 Last 5 Sessions:",
		"Study: 09:00 AM–12:00 PM, Game: 12:00 PM–12:00 PM",
		"Study: 01:00 PM–01:30 PM, Game: 01:30 PM–02:30 PM",
		"",
		"🧮 Total Weighted Score (study - 2×game): 1.50 hours",
	}, "\n")
	if got != want {
		t.Fatalf("summary:\n%s\nwant:\n%s", got, want)
	}
}

func TestSummaryEmptyHistory(t *testing.T) {
	got, err := Summary(tracker.Summary{Window: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, "0.00 hours") {
		t.Fatalf("empty summary should total 0.00 hours, got %q", got)
	}
}

func TestSummaryPropagatesUnset(t *testing.T) {
	_, err := Summary(tracker.Summary{Window: 5, Recent: []models.Session{{}}})
	if !errors.Is(err, models.ErrUnset) {
		t.Fatalf("error = %v, want ErrUnset", err)
	}
}

func TestHours(t *testing.T) {
	cases := map[float64]string{
		0:       "0.00 hours",
		1.5:     "1.50 hours",
		-2.25:   "-2.25 hours",
		3.14159: "3.14 hours",
	}
	for v, want := range cases {
		if got := Hours(v); got != want {
			t.Errorf("Hours(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestStatusShowsUnsetFields(t *testing.T) {
	var s models.Session
	s.Set(models.StudyStart, clockAt(9, 0))

	out := Status(s)
	if !strings.Contains(out, "09:00 AM") {
		t.Fatalf("status missing study start: %s", out)
	}
	if strings.Count(out, " -") != 3 {
		t.Fatalf("status should mark three unset fields: %s", out)
	}
}

func TestPromptListsCommands(t *testing.T) {
	want := "Type a command (study_start, study_end, game_start, game_end, history, quit): "
	if got := Prompt(); got != want {
		t.Fatalf("prompt = %q, want %q", got, want)
	}
}
