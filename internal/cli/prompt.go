package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user yes/no questions
type Prompter interface {
	Confirm(question string) (bool, error)
}

// StdioPrompter reads answers line by line from in and writes questions to out
type StdioPrompter struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

// NewStdioPrompter creates a prompter over in and out
func NewStdioPrompter(in io.Reader, out io.Writer) *StdioPrompter {
	tty := false
	if f, ok := in.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &StdioPrompter{in: bufio.NewReader(in), out: out, tty: tty}
}

// Confirm prints question followed by [y/N] and accepts "y" or "yes".
// Anything else, including end of input, declines.
func (p *StdioPrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	if !p.tty {
		// Piped answers are not echoed, keep the transcript on separate lines.
		fmt.Fprintln(p.out)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
