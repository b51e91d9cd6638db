package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentx-labs/create-discord-bot/internal/copier"
)

// OSFiles implements Files on the local filesystem.
type OSFiles struct {
	copier *copier.Copier
}

// NewOSFiles returns Files that skip the default transient artifacts when
// copying templates.
func NewOSFiles() *OSFiles {
	return &OSFiles{copier: copier.New(copier.DefaultExcludes...)}
}

func (f *OSFiles) Mkdir(dir string) error {
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", dir, err)
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

func (f *OSFiles) CopyTree(src fs.FS, root, dst string) error {
	if err := f.copier.Tree(src, root, dst); err != nil {
		return fmt.Errorf("copying %s to %s: %w", root, dst, err)
	}
	return nil
}

func (f *OSFiles) CopyFile(src fs.FS, name, dst string) error {
	if err := f.copier.File(src, name, dst); err != nil {
		return fmt.Errorf("copying %s to %s: %w", name, dst, err)
	}
	return nil
}

func (f *OSFiles) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
