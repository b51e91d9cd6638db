package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"charm.land/log/v2"
	"github.com/agentx-labs/create-discord-bot/internal/discord"
	"github.com/agentx-labs/create-discord-bot/internal/logger"
	"github.com/agentx-labs/create-discord-bot/internal/template"
)

// ErrAborted is returned when the user declines to update an existing
// project. Nothing has been written when it is returned.
var ErrAborted = errors.New("aborted: existing project left unchanged")

// Files performs the filesystem side effects of a plan.
type Files interface {
	// Mkdir creates dir and fails if it already exists.
	Mkdir(dir string) error
	// CopyTree copies root of src into dst, overwriting existing files.
	CopyTree(src fs.FS, root, dst string) error
	// CopyFile copies the file name of src to dst, overwriting it.
	CopyFile(src fs.FS, name, dst string) error
	// WriteFile creates or truncates path with data.
	WriteFile(path string, data []byte) error
}

// Installer installs the generated project's dependencies in dir.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// IdentityResolver looks up the bot behind a token. It never fails; problems
// are reported inside the Identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) discord.Identity
}

// Env holds the collaborators a plan runs against.
type Env struct {
	Template  *template.Template
	Files     Files
	Installer Installer
	Identity  IdentityResolver

	// Out receives step messages and results.
	Out io.Writer
	// Log receives warnings and debug detail. Nil discards.
	Log *log.Logger
}

func (e Env) logger() *log.Logger {
	if e.Log == nil {
		return logger.Discard()
	}
	return e.Log
}

func (e Env) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}

// Params are the values gathered from the user for one run.
type Params struct {
	Name      string // application name, also the package.json name
	Dir       string // absolute target directory
	Token     string // bot token, create path only
	Generator string // CLI name written into the description
	Version   string // CLI version written into the description
}

// Step is one named action of a plan.
type Step struct {
	Message string
	Action  func(ctx context.Context) error
	// Exempt steps run even in dry-run mode.
	Exempt bool
}

// PlanKind tells which branch produced a plan.
type PlanKind int

const (
	Create PlanKind = iota
	Update
)

func (k PlanKind) String() string {
	switch k {
	case Create:
		return "create"
	case Update:
		return "update"
	default:
		return fmt.Sprintf("PlanKind(%d)", int(k))
	}
}

// Plan is an ordered, immutable list of steps.
type Plan struct {
	Kind  PlanKind
	steps []Step
}

// Steps returns a copy of the plan's steps.
func (p Plan) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Len returns the number of steps.
func (p Plan) Len() int { return len(p.steps) }

// StepError reports which step of a plan failed.
type StepError struct {
	Index   int
	Message string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index+1, e.Message, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
