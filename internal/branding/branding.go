// Package branding provides compile-time identity values for the CLI.
//
// Forks edit branding.yaml in this package; Go's //go:embed bakes it into the
// binary so the generator name, Discord endpoints and env prefix stay in one
// place.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	APIBaseURL       string `yaml:"api_base_url"`
	InviteURLFormat  string `yaml:"invite_url_format"`
	SecretsKey       string `yaml:"secrets_key"`
	TokenPlaceholder string `yaml:"token_placeholder"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:          "create-discord-bot",
			DisplayName:      "Create Discord Bot",
			Description:      "Scaffold a ready-to-run Discord bot project",
			HomeDir:          ".create-discord-bot",
			EnvPrefix:        "CREATE_DISCORD_BOT",
			APIBaseURL:       "https://discord.com/api/v10",
			InviteURLFormat:  "https://discord.com/oauth2/authorize?client_id=%s&permissions=0&scope=bot%%20applications.commands",
			SecretsKey:       "DISCORD_BOT_TOKEN",
			TokenPlaceholder: "YOUR_BOT_TOKEN_HERE",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-discord-bot").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CREATE_DISCORD_BOT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// APIBaseURL returns the default Discord REST API base URL.
func APIBaseURL() string { load(); return defaults.APIBaseURL }

// InviteURLFormat returns the fmt pattern for bot invite links. It takes the
// application ID as its only verb.
func InviteURLFormat() string { load(); return defaults.InviteURLFormat }

// SecretsKey returns the key the bot token is stored under in .env.
func SecretsKey() string { load(); return defaults.SecretsKey }

// TokenPlaceholder returns the token written when the user skips the prompt.
func TokenPlaceholder() string { load(); return defaults.TokenPlaceholder }
