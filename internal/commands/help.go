package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studylog/internal/render"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for studylog",
	Long:  `Display detailed help for the studylog prompt and its flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp(cmd.OutOrStdout())
	},
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
studylog - study vs. game session tracker

USAGE:

  studylog                Start the interactive prompt
    --no-ui               Plain line-by-line prompt (works with pipes)
    --timezone            IANA timezone for timestamps (default America/New_York)
    --store               History backend: memory|sqlite (both in-memory)
    --window              Sessions listed by 'history' (default 5)
    --config              Config file (default $XDG_CONFIG_HOME/studylog/config.toml)
    --log-level           debug|info|warn|error

  help                    Show this help
  version                 Show version information

PROMPT `)
	fmt.Fprintln(w, render.Help())
	fmt.Fprint(w, `
SCORING:

  Each session is scored as study hours - 2 x game hours.
  'history' lists the last sessions and the total score over all of them.
  A session is logged on game_end once all four times are set.

`)
}
