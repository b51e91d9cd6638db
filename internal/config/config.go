package config

import (
	"os"
	"path/filepath"

	"github.com/agentx-labs/create-discord-bot/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood in the config file and as environment variables.
const (
	KeyAPIBaseURL    = "api_base_url"
	KeyInstaller     = "installer"
	KeyInstallerArgs = "installer_args"
	KeyTemplateDir   = "template_dir"
)

// Settings is the resolved configuration for one run.
type Settings struct {
	APIBaseURL    string
	Installer     string
	InstallerArgs []string
	TemplateDir   string
}

// Dir returns the path to the config directory (~/.create-discord-bot/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a Viper instance reading from path and the environment, with
// defaults applied. A missing file is not an error.
func New(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyAPIBaseURL, branding.APIBaseURL())
	v.SetDefault(KeyInstaller, "npm")
	v.SetDefault(KeyInstallerArgs, []string{"install"})
	v.SetDefault(KeyTemplateDir, "")

	_ = v.ReadInConfig()
	return v
}

// Load reads the user config file and environment into Settings.
func Load() Settings {
	return FromViper(New(FilePath()))
}

// FromViper extracts Settings from an already configured Viper instance.
func FromViper(v *viper.Viper) Settings {
	return Settings{
		APIBaseURL:    v.GetString(KeyAPIBaseURL),
		Installer:     v.GetString(KeyInstaller),
		InstallerArgs: v.GetStringSlice(KeyInstallerArgs),
		TemplateDir:   v.GetString(KeyTemplateDir),
	}
}
