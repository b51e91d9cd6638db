package scaffold

import (
	"context"
	"fmt"
	"io"
)

// Run executes plan in order. Each step's message is printed first; in
// dry-run mode only exempt steps have their action executed. The first
// failing step stops the plan and is returned as a *StepError.
func Run(ctx context.Context, plan Plan, dryRun bool, out io.Writer) error {
	for i, step := range plan.steps {
		fmt.Fprintln(out, step.Message)
		if dryRun && !step.Exempt {
			continue
		}
		if err := step.Action(ctx); err != nil {
			return &StepError{Index: i, Message: step.Message, Err: err}
		}
	}
	return nil
}

// PrintSummary writes the closing message after a successful run.
func PrintSummary(out io.Writer, plan Plan, name string, dryRun bool) {
	fmt.Fprintln(out)
	if dryRun {
		fmt.Fprintln(out, "Dry run complete. No files were changed.")
	}
	if plan.Kind == Update {
		fmt.Fprintf(out, "Done! Core files of %s are up to date.\n", name)
	} else {
		fmt.Fprintf(out, "Done! Created %s.\n", name)
	}
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  cd %s\n", name)
	fmt.Fprintln(out, "  npm start")
}
