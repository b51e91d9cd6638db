// Package discord resolves a bot token to its application identity through the
// Discord REST API and builds invite links. Lookups never fail loudly: every
// problem is reported inside the returned Identity so the caller can print a
// fallback and carry on.
package discord
