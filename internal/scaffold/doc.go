// Package scaffold turns a validated application name into a Discord bot
// project. It builds an immutable Plan of Steps for either the create path (a
// new directory) or the update path (refresh core files of an existing one)
// and runs it in order, honoring dry-run. Every side effect goes through the
// collaborators in Env so plans can be run against fakes.
package scaffold
