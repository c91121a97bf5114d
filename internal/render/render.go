// Package render turns tracker events and summaries into console text.
package render

import (
	"fmt"
	"strings"

	"github.com/balkashynov/studylog/internal/models"
	"github.com/balkashynov/studylog/internal/parser"
	"github.com/balkashynov/studylog/internal/tracker"
)

const (
	InvalidCommand = "❌ Invalid command."
	Goodbye        = "👋 Goodbye."
	SessionLogged  = "✅ Session logged."
)

// Prompt is shown before every command is read
func Prompt() string {
	return fmt.Sprintf("Type a command (%s): ", strings.Join(parser.Names(), ", "))
}

// Event formats the confirmation for a recording action
func Event(ev tracker.Event) string {
	var line string
	clock := ev.At.Format(models.ClockLayout)
	switch ev.Field {
	case models.StudyStart:
		line = fmt.Sprintf("📚 Study started at %s", clock)
	case models.StudyEnd:
		line = fmt.Sprintf("📚 Study ended at %s", clock)
	case models.GameStart:
		line = fmt.Sprintf("🎮 Game started at %s", clock)
	case models.GameEnd:
		line = fmt.Sprintf("🎮 Game ended at %s", clock)
	}
	if ev.Archived {
		line += "\n" + SessionLogged
		if score, err := ev.Session.WeightedScore(); err == nil {
			line += fmt.Sprintf(" Score: %s", Hours(score))
		}
	}
	return line
}

// Summary formats the recent sessions and the all-time weighted score
func Summary(sum tracker.Summary) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Last %d Sessions:\n", sum.Window)
	for i := range sum.Recent {
		line, err := sum.Recent[i].Readable()
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n🧮 Total Weighted Score (study - 2×game): %s", Hours(sum.Total))

	return b.String(), nil
}

// Hours formats a score with two decimals and the unit label
func Hours(v float64) string {
	return fmt.Sprintf("%.2f hours", v)
}

// Status describes the in-progress session field by field
func Status(s models.Session) string {
	labels := map[models.Field]string{
		models.StudyStart: "📚 Study start",
		models.StudyEnd:   "📚 Study end",
		models.GameStart:  "🎮 Game start",
		models.GameEnd:    "🎮 Game end",
	}

	var b strings.Builder
	b.WriteString("⏱️  Current session:")
	for _, f := range models.Fields {
		value := "-"
		if t := s.Get(f); t != nil {
			value = t.Format(models.ClockLayout)
		}
		fmt.Fprintf(&b, "\n  %-15s %s", labels[f]+":", value)
	}
	return b.String()
}

// Help lists every command the prompt understands
func Help() string {
	return `COMMANDS:
  study_start   Record the start of studying
  study_end     Record the end of studying
  game_start    Record the start of gaming
  game_end      Record the end of gaming (logs the session once all four times are set)
  history       Show the last sessions and the total weighted score
  status        Show the session in progress
  help          Show this help
  quit          Exit (history is not kept)`
}
