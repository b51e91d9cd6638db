// Package config manages user-level settings stored at
// ~/.create-discord-bot/config.yaml and CREATE_DISCORD_BOT_* environment
// variables: the Discord API base URL, the dependency installer command and an
// optional on-disk template directory.
package config
