// Package manifest reads, edits and validates the bot template's package.json.
// Edits keep every untouched field verbatim and in its original order, and
// generated manifests are checked against an embedded JSON Schema.
package manifest
