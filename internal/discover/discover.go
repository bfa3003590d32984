// Package discover enumerates installed modules from the modules
// directory.
package discover

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// reservedDir holds the stock modules shipped with the installation; they
// are never managed by mirrorctl.
const reservedDir = "default"

// Modules returns the installed module names, sorted. Hidden entries and
// the reserved default set are excluded.
func Modules(modulesDir string) ([]string, error) {
	entries, err := os.ReadDir(modulesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read modules directory %s: %w", modulesDir, err)
	}

	var modules []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || name == reservedDir {
			continue
		}
		modules = append(modules, name)
	}
	sort.Strings(modules)
	return modules, nil
}
