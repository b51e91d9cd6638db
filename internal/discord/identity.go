package discord

import (
	"fmt"
	"net/url"

	"github.com/agentx-labs/create-discord-bot/internal/branding"
)

// FallbackMessage is printed when no invite link can be produced.
const FallbackMessage = "Could not fetch the bot's application ID, so no invite link was generated. Check that your bot token is valid."

// Identity is the outcome of a lookup: either an application ID or the reason
// none was found. The zero value is a failure.
type Identity struct {
	id     string
	name   string
	reason string
}

// Resolved returns a successful Identity for id.
func Resolved(id, username string) Identity {
	return Identity{id: id, name: username}
}

// Failed returns an Identity describing why no ID was found.
func Failed(reason string) Identity {
	return Identity{reason: reason}
}

// OK reports whether the lookup produced an ID.
func (i Identity) OK() bool { return i.id != "" }

// ID returns the application ID. It is empty unless OK is true.
func (i Identity) ID() string { return i.id }

// Username returns the bot's username when the API reported one.
func (i Identity) Username() string { return i.name }

// Reason explains a failed lookup.
func (i Identity) Reason() string {
	if i.OK() {
		return ""
	}
	if i.reason == "" {
		return "no lookup performed"
	}
	return i.reason
}

// InviteURL returns the OAuth2 link that adds the bot to a server.
func InviteURL(id string) string {
	return fmt.Sprintf(branding.InviteURLFormat(), url.QueryEscape(id))
}

// Summary renders the line shown to the user after a lookup.
func (i Identity) Summary() string {
	if !i.OK() {
		return FallbackMessage
	}
	who := "your bot"
	if i.name != "" {
		who = i.name
	}
	return fmt.Sprintf("Invite %s: %s", who, InviteURL(i.id))
}
