package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"charm.land/log/v2"
	"github.com/agentx-labs/create-discord-bot/internal/branding"
	"github.com/agentx-labs/create-discord-bot/internal/config"
	"github.com/agentx-labs/create-discord-bot/internal/discord"
	"github.com/agentx-labs/create-discord-bot/internal/installer"
	"github.com/agentx-labs/create-discord-bot/internal/pkgname"
	"github.com/agentx-labs/create-discord-bot/internal/prompt"
	"github.com/agentx-labs/create-discord-bot/internal/scaffold"
	"github.com/agentx-labs/create-discord-bot/internal/template"
)

// app is one interactive run: collect a name, pick the create or update
// path, then execute its plan.
type app struct {
	prompter *prompt.Prompter
	out      io.Writer
	log      *log.Logger

	tmpl      *template.Template
	files     scaffold.Files
	installer scaffold.Installer
	identity  scaffold.IdentityResolver

	// cwd anchors relative application names; empty means os.Getwd.
	cwd     string
	version string
	dryRun  bool
}

func newApp(in io.Reader, out io.Writer, lg *log.Logger, settings config.Settings) (*app, error) {
	tmpl, err := template.Resolve(settings.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	lg.Debug("using template", "source", tmpl.Source)

	inst := installer.New(settings.Installer, settings.InstallerArgs...)
	inst.Stdout = out

	return &app{
		prompter:  prompt.New(in, out),
		out:       out,
		log:       lg,
		tmpl:      tmpl,
		files:     scaffold.NewOSFiles(),
		installer: inst,
		identity: discord.New(
			discord.WithBaseURL(settings.APIBaseURL),
			discord.WithUserAgent(branding.CLIName()+"/"+buildVersion),
		),
		version: buildVersion,
	}, nil
}

func (a *app) run(ctx context.Context) error {
	if a.dryRun {
		fmt.Fprintln(a.out, "Dry run: steps are listed but no files are changed.")
	}

	m, err := a.tmpl.Manifest()
	if err != nil {
		return fmt.Errorf("loading template manifest: %w", err)
	}

	name, err := a.prompter.Text("Application name", m.Name(), pkgname.Check)
	if err != nil {
		return fmt.Errorf("reading application name: %w", err)
	}

	dir, err := a.resolveDir(name)
	if err != nil {
		return err
	}
	a.log.Debug("resolved target", "dir", dir)

	params := scaffold.Params{
		Name:      name,
		Dir:       dir,
		Generator: branding.CLIName(),
		Version:   a.version,
	}
	env := scaffold.Env{
		Template:  a.tmpl,
		Files:     a.files,
		Installer: a.installer,
		Identity:  a.identity,
		Out:       a.out,
		Log:       a.log,
	}

	var plan scaffold.Plan
	info, statErr := os.Stat(dir)
	switch {
	case statErr == nil && !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", name)
	case statErr == nil:
		ok, err := a.prompter.Confirm(fmt.Sprintf("Directory %s already exists. Update its core files?", name))
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(a.out, "Quitting without changes.")
			return scaffold.ErrAborted
		}
		plan = scaffold.UpdatePlan(params, env)
	case errors.Is(statErr, fs.ErrNotExist):
		token, err := a.prompter.Secret("Discord bot token", branding.TokenPlaceholder())
		if err != nil {
			return fmt.Errorf("reading bot token: %w", err)
		}
		params.Token = token
		a.log.Debug("collected bot token", "token", redact(token))
		plan = scaffold.CreatePlan(params, env)
	default:
		return fmt.Errorf("checking %s: %w", dir, statErr)
	}

	a.log.Debug("planned", "kind", plan.Kind, "steps", plan.Len(), "dry_run", a.dryRun)
	fmt.Fprintln(a.out)
	if err := scaffold.Run(ctx, plan, a.dryRun, a.out); err != nil {
		return err
	}

	scaffold.PrintSummary(a.out, plan, name, a.dryRun)
	return nil
}

func (a *app) resolveDir(name string) (string, error) {
	if a.cwd == "" {
		dir, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", name, err)
		}
		return dir, nil
	}
	return filepath.Join(a.cwd, filepath.FromSlash(name)), nil
}

// redact keeps the first four characters of a secret for debug output.
func redact(secret string) string {
	if len(secret) >= 4 {
		return secret[:4] + "***"
	}
	return "***"
}
