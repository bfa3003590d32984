// Package fragment persists extracted module blocks as reusable files,
// one per module, under the templates directory.
package fragment

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mirrorctl/pkg/logging"
)

const fragmentExt = ".js"

// Store maps module names to fragment files on disk. The file name is
// derived deterministically from the module name.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is expected to
// exist (Layout.Init creates it).
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the fragment file path for the given module.
func (s *Store) Path(module string) string {
	return filepath.Join(s.dir, module+fragmentExt)
}

// Exists reports whether a fragment is already persisted for the module.
func (s *Store) Exists(module string) bool {
	_, err := os.Stat(s.Path(module))
	return err == nil
}

// Read returns the fragment contents for the module. The error wraps
// os.ErrNotExist when no fragment has been persisted.
func (s *Store) Read(module string) (string, error) {
	data, err := os.ReadFile(s.Path(module))
	if err != nil {
		return "", fmt.Errorf("failed to read fragment for %s: %w", module, err)
	}
	return string(data), nil
}

// Write persists a fragment for the module, replacing any existing one.
// Callers that must not clobber manual edits check Exists first; the
// populator does, the forced-refresh path does not.
func (s *Store) Write(module, content string) error {
	path := s.Path(module)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write fragment %s: %w", path, err)
	}
	logging.Info("fragment", "Template written: %s", filepath.Base(path))
	return nil
}

// List returns the names of all persisted fragments, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list fragments in %s: %w", s.dir, err)
	}

	var modules []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fragmentExt) {
			continue
		}
		modules = append(modules, strings.TrimSuffix(e.Name(), fragmentExt))
	}
	sort.Strings(modules)
	return modules, nil
}
