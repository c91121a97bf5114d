package parser

import (
	"regexp"
	"strings"

	"github.com/balkashynov/studylog/internal/models"
)

// Command is an action typed at the prompt
type Command int

const (
	Invalid Command = iota
	Empty
	StudyStart
	StudyEnd
	GameStart
	GameEnd
	History
	Status
	Help
	Quit
)

var commandNames = map[string]Command{
	"study_start": StudyStart,
	"study_end":   StudyEnd,
	"game_start":  GameStart,
	"game_end":    GameEnd,
	"history":     History,
	"status":      Status,
	"help":        Help,
	"quit":        Quit,
}

// separatorRegex matches runs of spaces or dashes so "study start" and "study-start" resolve too
var separatorRegex = regexp.MustCompile(`[\s-]+`)

// ParseCommand resolves user input to a command.
// Input is trimmed and matched case-insensitively; blank input yields Empty.
func ParseCommand(input string) Command {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return Empty
	}

	input = separatorRegex.ReplaceAllString(input, "_")
	if cmd, ok := commandNames[input]; ok {
		return cmd
	}
	return Invalid
}

// Field returns the session field a recording command sets
func (c Command) Field() (models.Field, bool) {
	switch c {
	case StudyStart:
		return models.StudyStart, true
	case StudyEnd:
		return models.StudyEnd, true
	case GameStart:
		return models.GameStart, true
	case GameEnd:
		return models.GameEnd, true
	}
	return 0, false
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	if c == Empty {
		return "empty"
	}
	return "invalid"
}

// Names lists the commands shown in the prompt, in prompt order
func Names() []string {
	return []string{"study_start", "study_end", "game_start", "game_end", "history", "quit"}
}
