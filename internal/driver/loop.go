package driver

import (
	"bufio"
	"fmt"
	"io"

	"github.com/balkashynov/studylog/internal/parser"
	"github.com/balkashynov/studylog/internal/render"
)

// RunLoop reads commands line by line until quit or end of input
func RunLoop(d *Dispatcher, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "\n%s", render.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		reply := d.Handle(scanner.Text())
		if reply.Command == parser.History && reply.Err == nil {
			fmt.Fprintln(out)
		}
		if reply.Text != "" {
			fmt.Fprintln(out, reply.Text)
		}
		if reply.Err != nil {
			fmt.Fprintf(out, "Error: %v\n", reply.Err)
		}
		if reply.Quit {
			return nil
		}
	}
}
