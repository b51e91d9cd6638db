// Package template locates the bot template copied into every generated
// project. The default template is embedded in the binary; a directory on disk
// can replace it through the template_dir setting.
package template

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/agentx-labs/create-discord-bot/internal/manifest"
)

//go:embed all:files
var embedded embed.FS

// Layout of a template. The update path only refreshes CoreDir and EntryPoint.
const (
	CoreDir    = "core"
	EntryPoint = "index.js"
)

// Template is a read-only bot template.
type Template struct {
	FS     fs.FS
	Source string // "embedded" or the on-disk directory
}

// Embedded returns the template compiled into the binary.
func Embedded() *Template {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		// The embed directive guarantees "files" exists.
		panic(err)
	}
	return &Template{FS: sub, Source: "embedded"}
}

// FromDir returns a template rooted at dir. The directory must contain a
// package.json.
func FromDir(dir string) (*Template, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path %s is not a directory", dir)
	}
	t := &Template{FS: os.DirFS(dir), Source: dir}
	if _, err := fs.Stat(t.FS, manifest.FileName); err != nil {
		return nil, fmt.Errorf("template directory %s has no %s", dir, manifest.FileName)
	}
	return t, nil
}

// Resolve returns the on-disk template when dir is set, otherwise the
// embedded one.
func Resolve(dir string) (*Template, error) {
	if dir == "" {
		return Embedded(), nil
	}
	return FromDir(dir)
}

// Manifest loads the template's package.json.
func (t *Template) Manifest() (*manifest.Descriptor, error) {
	return manifest.Load(t.FS, manifest.FileName)
}
