package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/agentx-labs/create-discord-bot/internal/branding"
	"github.com/agentx-labs/create-discord-bot/internal/config"
	"github.com/agentx-labs/create-discord-bot/internal/logger"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	dryRun  bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` asks for an application name and a bot token, then creates a
ready-to-run Discord bot project: template files, package.json, .gitignore,
.env with the token, installed dependencies and an invite link.

Running it again on an existing project offers to refresh the template's core
files and entry point, leaving package.json, .env and your own files alone.`,
	Example: `  ` + branding.CLIName() + `
  ` + branding.CLIName() + ` --dry-run`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()
		a, err := newApp(cmd.InOrStdin(), cmd.OutOrStdout(), logger.New(cmd.ErrOrStderr(), verbose), settings)
		if err != nil {
			return err
		}
		a.dryRun = dryRun
		return a.run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print every step without changing files or installing dependencies")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail to stderr")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version %s (commit: %s, built: %s)\n",
		branding.CLIName(), buildVersion, buildCommit, buildDate))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
