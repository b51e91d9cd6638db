package scaffold

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/create-discord-bot/internal/branding"
	"github.com/agentx-labs/create-discord-bot/internal/manifest"
	"github.com/agentx-labs/create-discord-bot/internal/template"
)

// Files written into a new project besides the template.
const (
	IgnoreFile  = ".gitignore"
	SecretsFile = ".env"
)

// IgnoreEntries are the transient artifacts listed in a new project's
// .gitignore.
var IgnoreEntries = []string{"node_modules", SecretsFile}

// IgnoreContent returns the .gitignore written into new projects.
func IgnoreContent() []byte {
	return []byte(strings.Join(IgnoreEntries, "\n") + "\n")
}

// SecretsContent returns the .env line holding the bot token.
func SecretsContent(token string) []byte {
	return []byte(fmt.Sprintf("%s=%s\n", branding.SecretsKey(), token))
}

// Description returns the generated package.json description, e.g.
// "Generated by create-discord-bot v1.4.0".
func Description(generator, version string) string {
	if v, err := semver.NewVersion(version); err == nil {
		return fmt.Sprintf("Generated by %s v%s", generator, v.String())
	}
	if version == "" {
		return "Generated by " + generator
	}
	return fmt.Sprintf("Generated by %s %s", generator, version)
}

// CreatePlan returns the six steps that materialize a new project in p.Dir.
func CreatePlan(p Params, env Env) Plan {
	out := env.out()
	lg := env.logger()

	return Plan{Kind: Create, steps: []Step{
		{
			Message: fmt.Sprintf("Creating directory %s...", p.Name),
			Action: func(context.Context) error {
				return env.Files.Mkdir(p.Dir)
			},
		},
		{
			Message: "Copying template files...",
			Action: func(context.Context) error {
				if err := env.Files.CopyTree(env.Template.FS, ".", p.Dir); err != nil {
					return err
				}
				return env.Files.WriteFile(filepath.Join(p.Dir, IgnoreFile), IgnoreContent())
			},
		},
		{
			Message: fmt.Sprintf("Writing %s...", manifest.FileName),
			Action: func(context.Context) error {
				m, err := env.Template.Manifest()
				if err != nil {
					return err
				}
				if err := m.CheckVersion(); err != nil {
					lg.Warn("template manifest", "err", err)
				}
				if err := m.SetString("name", p.Name); err != nil {
					return err
				}
				if err := m.SetString("description", Description(p.Generator, p.Version)); err != nil {
					return err
				}

				data, err := m.Marshal()
				if err != nil {
					return err
				}
				if err := env.Files.WriteFile(filepath.Join(p.Dir, manifest.FileName), data); err != nil {
					return err
				}

				result, err := manifest.Validate(data)
				if err != nil {
					lg.Warn("could not validate manifest", "err", err)
					return nil
				}
				for _, issue := range result.Issues {
					fmt.Fprintf(out, "  warning: %s\n", issue)
				}
				return nil
			},
		},
		{
			Message: fmt.Sprintf("Writing %s...", SecretsFile),
			Action: func(context.Context) error {
				return env.Files.WriteFile(filepath.Join(p.Dir, SecretsFile), SecretsContent(p.Token))
			},
		},
		{
			Message: "Installing dependencies...",
			Action: func(ctx context.Context) error {
				return env.Installer.Install(ctx, p.Dir)
			},
		},
		{
			Message: "Looking up your bot...",
			Exempt:  true,
			Action: func(ctx context.Context) error {
				id := env.Identity.Resolve(ctx, p.Token)
				if !id.OK() {
					lg.Debug("identity lookup failed", "reason", id.Reason())
				}
				fmt.Fprintln(out, id.Summary())
				return nil
			},
		},
	}}
}

// UpdatePlan returns the single step that refreshes the template's core
// subtree and entry point in an existing project. The manifest, .gitignore,
// .env and installed dependencies are left alone.
func UpdatePlan(p Params, env Env) Plan {
	return Plan{Kind: Update, steps: []Step{
		{
			Message: fmt.Sprintf("Updating core files in %s...", p.Name),
			Action: func(context.Context) error {
				if err := env.Files.CopyTree(env.Template.FS, template.CoreDir, filepath.Join(p.Dir, template.CoreDir)); err != nil {
					return err
				}
				return env.Files.CopyFile(env.Template.FS, template.EntryPoint, filepath.Join(p.Dir, template.EntryPoint))
			},
		},
	}}
}
