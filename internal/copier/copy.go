// Package copier copies template trees from an fs.FS onto disk. Parent
// directories are created, existing files are overwritten, and entries
// matching the exclusion patterns (gitignore syntax) are skipped.
package copier

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DefaultExcludes are transient artifacts never copied out of a template.
var DefaultExcludes = []string{"node_modules/", ".git/", ".DS_Store", ".env"}

// Copier copies files and directory trees, skipping excluded entries.
type Copier struct {
	matcher gitignore.Matcher
}

// New returns a Copier that skips entries matching any of patterns.
func New(patterns ...string) *Copier {
	ps := make([]gitignore.Pattern, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(p, nil))
	}
	return &Copier{matcher: gitignore.NewMatcher(ps)}
}

// Excluded reports whether the slash-separated path rel is skipped.
func (c *Copier) Excluded(rel string, isDir bool) bool {
	if rel == "." || rel == "" {
		return false
	}
	return c.matcher.Match(strings.Split(rel, "/"), isDir)
}

// Tree copies the directory root of src into dst. Use "." to copy the whole
// filesystem.
func (c *Copier) Tree(src fs.FS, root, dst string) error {
	return fs.WalkDir(src, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := p
		if root != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
			if rel == "" {
				rel = "."
			}
		}

		if c.Excluded(p, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, filepath.FromSlash(rel))
		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			// Symlinks and special files are not part of a template.
			return nil
		}
		return copyFile(src, p, target)
	})
}

// File copies the single file name from src to dst.
func (c *Copier) File(src fs.FS, name, dst string) error {
	if c.Excluded(name, false) {
		return nil
	}
	return copyFile(src, name, dst)
}

// copyFile writes src/name to dst. Execute bits are kept; files are always
// at least 0644 so a later update can overwrite them.
func copyFile(src fs.FS, name, dst string) error {
	data, err := fs.ReadFile(src, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	perm := fs.FileMode(0o644)
	if info, err := fs.Stat(src, name); err == nil {
		perm = info.Mode().Perm() | 0o644
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
