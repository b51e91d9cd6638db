// Package prompt asks the user for text, masked secrets and yes/no answers on
// a line-oriented terminal. It works on any io.Reader so flows can be driven
// from tests.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when input ends before an acceptable answer.
var ErrNoInput = errors.New("no input: prompt closed before an answer was given")

// Prompter renders prompts to out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal used for masked input, or -1 when in is not a
	// terminal.
	fd int
}

// New returns a Prompter. Secrets are masked only when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Text asks for a line of text. An empty answer selects def. When validate
// rejects the answer its error is shown and the question is asked again.
func (p *Prompter) Text(label, def string, validate func(string) error) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "? %s (%s): ", label, def)
		} else {
			fmt.Fprintf(p.out, "? %s: ", label)
		}

		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		answer := line
		if answer == "" {
			answer = def
		}

		if validate != nil {
			if verr := validate(answer); verr != nil {
				fmt.Fprintf(p.out, "  ✖ %v\n", verr)
				continue
			}
		}
		return answer, nil
	}
}

// Secret asks for a value without echoing it when reading from a terminal.
// An empty answer selects def.
func (p *Prompter) Secret(label, def string) (string, error) {
	fmt.Fprintf(p.out, "? %s: ", label)

	var answer string
	if p.fd >= 0 {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
		answer = strings.TrimSpace(string(b))
	} else {
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		answer = line
	}

	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) confirms;
// everything else, including an empty answer or closed input, declines.
func (p *Prompter) Confirm(label string) (bool, error) {
	fmt.Fprintf(p.out, "? %s (y/N): ", label)

	line, err := p.readLine()
	if errors.Is(err, ErrNoInput) {
		fmt.Fprintln(p.out)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine returns the next trimmed line. A final line without a newline is
// still returned; ErrNoInput is returned only when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrNoInput
			}
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
