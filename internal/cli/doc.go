// Package cli defines the cobra root command. It has no subcommands: the
// command collects input, chooses the create or update plan and hands it to
// the scaffold package. Flag parsing, prompting and terminal output live here;
// side effects live behind the scaffold collaborators.
package cli
