package tracker

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/balkashynov/studylog/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// set moves the clock to hour:minute UTC on a fixed day
func (c *fakeClock) set(hour, minute int) {
	c.now = time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func newTestTracker(t *testing.T) (*Tracker, *fakeClock) {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	clock := &fakeClock{}
	clock.set(13, 0)
	return New(Options{Location: loc, Clock: clock.Now}), clock
}

// runSession records a full session; times are UTC hours
func runSession(t *testing.T, tr *Tracker, clock *fakeClock, studyFrom, studyTo, gameFrom, gameTo [2]int) Event {
	t.Helper()
	clock.set(studyFrom[0], studyFrom[1])
	tr.StudyStart()
	clock.set(studyTo[0], studyTo[1])
	tr.StudyEnd()
	clock.set(gameFrom[0], gameFrom[1])
	tr.GameStart()
	clock.set(gameTo[0], gameTo[1])
	ev, err := tr.GameEnd()
	if err != nil {
		t.Fatalf("game end: %v", err)
	}
	return ev
}

func TestRecordUsesConfiguredLocation(t *testing.T) {
	tr, _ := newTestTracker(t)

	ev := tr.StudyStart()
	if ev.At.Location().String() != "America/New_York" {
		t.Fatalf("location = %s, want America/New_York", ev.At.Location())
	}
	// 13:00 UTC in March (EDT) is 09:00 AM
	if got := ev.At.Format(models.ClockLayout); got != "09:00 AM" {
		t.Fatalf("formatted time = %s, want 09:00 AM", got)
	}
	if ev.Field != models.StudyStart || ev.Archived {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestCompleteSessionIsArchived(t *testing.T) {
	tr, clock := newTestTracker(t)

	ev := runSession(t, tr, clock, [2]int{13, 0}, [2]int{15, 0}, [2]int{15, 0}, [2]int{16, 0})
	if !ev.Archived {
		t.Fatalf("expected session to be archived")
	}
	if ev.Session.ID != 1 {
		t.Fatalf("archived session ID = %d, want 1", ev.Session.ID)
	}
	score, err := ev.Session.WeightedScore()
	if err != nil || score != 0 {
		t.Fatalf("score = %v, %v; want 0", score, err)
	}

	current := tr.Current()
	for _, f := range models.Fields {
		if current.Get(f) != nil {
			t.Fatalf("current session should be empty after archival, %s is set", f)
		}
	}

	sum, err := tr.HistorySummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Count != 1 || len(sum.Recent) != 1 {
		t.Fatalf("summary = %+v, want one session", sum)
	}
}

func TestGameEndTwiceDoesNotDoubleArchive(t *testing.T) {
	tr, clock := newTestTracker(t)

	runSession(t, tr, clock, [2]int{13, 0}, [2]int{14, 0}, [2]int{14, 0}, [2]int{15, 0})

	clock.set(16, 0)
	ev, err := tr.GameEnd()
	if err != nil {
		t.Fatalf("game end: %v", err)
	}
	if ev.Archived {
		t.Fatalf("second game_end must not archive")
	}

	sum, err := tr.HistorySummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Count != 1 {
		t.Fatalf("history length = %d, want 1", sum.Count)
	}
	if tr.Current().GameEnd == nil {
		t.Fatalf("second game_end should land on the new current session")
	}
}

func TestPartialSessionIsNeverArchived(t *testing.T) {
	tr, clock := newTestTracker(t)

	clock.set(13, 0)
	tr.StudyStart()
	clock.set(14, 0)
	tr.StudyEnd()
	clock.set(15, 0)
	ev, err := tr.GameEnd()
	if err != nil {
		t.Fatalf("game end: %v", err)
	}
	if ev.Archived {
		t.Fatalf("incomplete session must not be archived")
	}

	sum, err := tr.HistorySummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Count != 0 || sum.Total != 0 || len(sum.Recent) != 0 {
		t.Fatalf("summary = %+v, want empty", sum)
	}

	// the same partial session is completed by later calls
	clock.set(14, 30)
	tr.GameStart()
	clock.set(16, 0)
	ev, err = tr.GameEnd()
	if err != nil {
		t.Fatalf("game end: %v", err)
	}
	if !ev.Archived {
		t.Fatalf("expected archival once the session is complete")
	}
	study, _ := ev.Session.StudyDuration()
	game, _ := ev.Session.GameDuration()
	if study != 1 || game != 1.5 {
		t.Fatalf("durations = (%v, %v), want (1, 1.5)", study, game)
	}
}

func TestOnlyGameEndArchives(t *testing.T) {
	tr, clock := newTestTracker(t)

	clock.set(13, 0)
	tr.GameStart()
	clock.set(14, 0)
	if _, err := tr.GameEnd(); err != nil {
		t.Fatalf("game end: %v", err)
	}
	clock.set(15, 0)
	tr.StudyStart()
	clock.set(17, 0)
	ev := tr.StudyEnd()
	if ev.Archived {
		t.Fatalf("study_end must not archive")
	}
	if !tr.Current().IsComplete() {
		t.Fatalf("current session should be complete but still current")
	}

	clock.set(18, 0)
	last, err := tr.GameEnd()
	if err != nil {
		t.Fatalf("game end: %v", err)
	}
	if !last.Archived {
		t.Fatalf("game_end on a complete session should archive")
	}
	game, _ := last.Session.GameDuration()
	if game != 5 {
		t.Fatalf("game duration = %v, want 5 (overwritten game_end)", game)
	}
}

func TestStudyStartOverwrite(t *testing.T) {
	tr, clock := newTestTracker(t)

	clock.set(12, 0)
	tr.StudyStart()
	clock.set(13, 0)
	tr.StudyStart()
	clock.set(14, 0)
	tr.StudyEnd()

	current := tr.Current()
	got, err := current.StudyDuration()
	if err != nil {
		t.Fatalf("study duration: %v", err)
	}
	if got != 1 {
		t.Fatalf("study duration = %v, want 1 using the second start", got)
	}
}

func TestHistorySummaryWindowAndTotal(t *testing.T) {
	tr, clock := newTestTracker(t)

	// scores: 3.0 and -1.5
	runSession(t, tr, clock, [2]int{13, 0}, [2]int{16, 0}, [2]int{16, 0}, [2]int{16, 0})
	runSession(t, tr, clock, [2]int{17, 0}, [2]int{17, 30}, [2]int{17, 30}, [2]int{18, 30})

	sum, err := tr.HistorySummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Total != 1.5 {
		t.Fatalf("total = %v, want 1.5", sum.Total)
	}

	// five more sessions scoring 1.0 each
	for i := 0; i < 5; i++ {
		runSession(t, tr, clock, [2]int{10, 0}, [2]int{11, 0}, [2]int{11, 0}, [2]int{11, 0})
	}

	sum, err = tr.HistorySummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Count != 7 {
		t.Fatalf("count = %d, want 7", sum.Count)
	}
	if len(sum.Recent) != DefaultWindow {
		t.Fatalf("recent = %d sessions, want %d", len(sum.Recent), DefaultWindow)
	}
	if sum.Recent[0].ID != 3 || sum.Recent[4].ID != 7 {
		t.Fatalf("recent IDs = %d..%d, want 3..7 in insertion order", sum.Recent[0].ID, sum.Recent[4].ID)
	}
	if sum.Total != 6.5 {
		t.Fatalf("total = %v, want 6.5 over the whole history", sum.Total)
	}
}

type failingHistory struct {
	MemoryHistory
}

var errStore = errors.New("store unavailable")

func (f *failingHistory) Append(*models.Session) error {
	return errStore
}

func TestAppendFailureKeepsCurrentSession(t *testing.T) {
	clock := &fakeClock{}
	tr := New(Options{Location: time.UTC, Clock: clock.Now, History: &failingHistory{}})

	clock.set(9, 0)
	tr.StudyStart()
	tr.StudyEnd()
	tr.GameStart()
	ev, err := tr.GameEnd()
	if !errors.Is(err, errStore) {
		t.Fatalf("error = %v, want errStore", err)
	}
	if ev.Archived {
		t.Fatalf("failed append must not report archival")
	}
	if !tr.Current().IsComplete() {
		t.Fatalf("complete session should stay current after a failed append")
	}
	if !tr.Current().ArchivedAt.IsZero() {
		t.Fatalf("failed append must not stamp the current session as archived")
	}
}

func TestArchivedSessionCarriesArchiveTime(t *testing.T) {
	tr, clock := newTestTracker(t)

	ev := runSession(t, tr, clock, [2]int{13, 0}, [2]int{14, 0}, [2]int{14, 0}, [2]int{15, 0})
	if !ev.Session.ArchivedAt.Equal(ev.At) {
		t.Fatalf("archived at = %v, want %v", ev.Session.ArchivedAt, ev.At)
	}
	if !tr.Current().ArchivedAt.IsZero() {
		t.Fatalf("fresh current session should not carry an archive time")
	}
}

func TestRecordMatchesNamedActions(t *testing.T) {
	tr, clock := newTestTracker(t)

	for i, f := range models.Fields {
		clock.set(13+i, 0)
		ev, err := tr.Record(f)
		if err != nil {
			t.Fatalf("record %s: %v", f, err)
		}
		if ev.Field != f {
			t.Fatalf("event field = %s, want %s", ev.Field, f)
		}
		if f == models.GameEnd && !ev.Archived {
			t.Fatalf("recording game_end on a complete session should archive")
		}
	}
}

func TestNewDefaults(t *testing.T) {
	tr := New(Options{})
	if tr.window != DefaultWindow {
		t.Fatalf("window = %d, want %d", tr.window, DefaultWindow)
	}
	if tr.Location() == nil {
		t.Fatalf("location should default")
	}
	if _, ok := tr.history.(*MemoryHistory); !ok {
		t.Fatalf("history should default to MemoryHistory, got %T", tr.history)
	}
}
