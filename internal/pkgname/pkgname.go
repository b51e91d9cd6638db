// Package pkgname checks candidate application names against the npm package
// naming rules, so the generated package.json is publishable and the target
// directory name is URL-safe.
package pkgname

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLength is the longest name npm accepts for new packages.
const MaxLength = 214

var scopedPattern = regexp.MustCompile(`^(?:@([^/]+?)/)?([^/]+?)$`)

var reservedNames = map[string]bool{
	"node_modules": true,
	"favicon.ico":  true,
}

// coreModules are Node.js builtin module names. They are legal for old
// packages but rejected for new ones.
var coreModules = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
	"events": true, "fs": true, "http": true, "http2": true, "https": true,
	"inspector": true, "module": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "repl": true, "stream": true, "string_decoder": true,
	"sys": true, "timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

// Result is the verdict for one candidate name. Warnings cover rules npm
// only enforces for new packages; either kind makes the name unusable here.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Problems returns errors followed by warnings, for display.
func (r Result) Problems() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}

// Validate applies the npm naming rules to name.
func Validate(name string) Result {
	var errs, warnings []string

	if name == "" {
		errs = append(errs, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		errs = append(errs, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		errs = append(errs, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		errs = append(errs, "name cannot contain leading or trailing spaces")
	}

	lower := strings.ToLower(name)
	if reservedNames[lower] {
		errs = append(errs, fmt.Sprintf("%s is a blacklisted name", lower))
	}
	if coreModules[lower] {
		warnings = append(warnings, fmt.Sprintf("%s is a core module name", lower))
	}
	if len(name) > MaxLength {
		warnings = append(warnings, fmt.Sprintf("name can no longer contain more than %d characters", MaxLength))
	}
	if lower != name {
		warnings = append(warnings, "name can no longer contain capital letters")
	}

	segments := strings.Split(name, "/")
	if strings.ContainsAny(segments[len(segments)-1], "~'!()*") {
		warnings = append(warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if m := scopedPattern.FindStringSubmatch(name); m != nil && m[1] != "" {
		if strings.HasPrefix(m[1], ".") {
			errs = append(errs, "scope name cannot start with a period")
		}
		if strings.HasPrefix(m[2], ".") {
			errs = append(errs, "name cannot start with a period")
		}
	}

	if !uriSafe(name) && !scopedURISafe(name) {
		errs = append(errs, "name can only contain URL-friendly characters")
	}

	return Result{
		Valid:    len(errs) == 0 && len(warnings) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// Check returns nil when name is valid for a new package, or an error listing
// every problem found.
func Check(name string) error {
	r := Validate(name)
	if r.Valid {
		return nil
	}
	return fmt.Errorf("invalid name %q: %s", name, strings.Join(r.Problems(), "; "))
}

func scopedURISafe(name string) bool {
	m := scopedPattern.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return false
	}
	return uriSafe(m[1]) && uriSafe(m[2])
}

// uriSafe reports whether s survives JavaScript's encodeURIComponent
// unchanged.
func uriSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
