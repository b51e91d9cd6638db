// Package installer runs the generated project's dependency installer
// (npm install by default) inside the project directory.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is an external installer invoked in the target directory.
type Command struct {
	Name string
	Args []string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Command running name with args.
func New(name string, args ...string) *Command {
	return &Command{Name: name, Args: args}
}

// String renders the command line, e.g. "npm install".
func (c *Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Install runs the command with its working directory set to dir. It returns
// an error when the binary is missing or exits with a non-zero status.
func (c *Command) Install(ctx context.Context, dir string) error {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return fmt.Errorf("%s not found on PATH: %w", c.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = dir
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with status %d", c, exitErr.ExitCode())
		}
		return fmt.Errorf("running %s in %s: %w", c, dir, err)
	}
	return nil
}
