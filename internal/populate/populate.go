// Package populate fills the fragment store for installed modules. It is
// best-effort and idempotent: modules that already have a fragment are
// skipped so manual edits survive, and a module with no usable source is
// skipped with a warning rather than failing the run.
package populate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mirrorctl/internal/extract"
	"mirrorctl/internal/fragment"
	"mirrorctl/pkg/logging"
)

const subsystem = "populate"

// defaultPrefix marks modules belonging to the non-editable default set.
const defaultPrefix = "default/"

// ErrNoSource is returned when none of the candidate sources yields a
// fragment for a module.
var ErrNoSource = errors.New("no template source found")

// Populator derives fragments from candidate sources in priority order:
// the master record, the module's README, then a verbatim sample file.
type Populator struct {
	Store      *fragment.Store
	MasterPath string
	ModulesDir string
}

// Run populates fragments for every module that needs one. A module with
// no usable source is logged and skipped; Run only fails when the master
// record itself cannot be read.
func (p *Populator) Run(modules []string) error {
	masterData, err := os.ReadFile(p.MasterPath)
	if err != nil {
		return fmt.Errorf("failed to read master record %s: %w", p.MasterPath, err)
	}
	masterText := string(masterData)

	for _, module := range modules {
		if strings.HasPrefix(module, defaultPrefix) {
			continue
		}
		if p.Store.Exists(module) {
			logging.Debug(subsystem, "Template exists: %s", module)
			continue
		}

		if err := p.derive(masterText, module); err != nil {
			logging.Warn(subsystem, "No template source found for %s, skipping", module)
		}
	}

	return nil
}

// Refresh re-derives one module's fragment from the fallback chain,
// replacing whatever is persisted. This is the explicit escape hatch from
// the never-overwrite contract of Run.
func (p *Populator) Refresh(module string) error {
	masterData, err := os.ReadFile(p.MasterPath)
	if err != nil {
		return fmt.Errorf("failed to read master record %s: %w", p.MasterPath, err)
	}
	if err := p.derive(string(masterData), module); err != nil {
		return fmt.Errorf("%w for %s", ErrNoSource, module)
	}
	return nil
}

// derive tries each candidate source in priority order and persists the
// first hit.
func (p *Populator) derive(masterText, module string) error {
	// 1. The master record.
	if block, err := extract.Block(masterText, module); err == nil {
		return p.Store.Write(module, block)
	}

	// 2. The module's README.
	readmePath := filepath.Join(p.ModulesDir, module, "README.md")
	if data, err := os.ReadFile(readmePath); err == nil {
		if block, err := extract.Block(string(data), module); err == nil {
			return p.Store.Write(module, block)
		}
	}

	// 3. A verbatim sample file shipped with the module.
	samplePath := filepath.Join(p.ModulesDir, module, "sample", module+".js")
	if data, err := os.ReadFile(samplePath); err == nil {
		return p.Store.Write(module, string(data))
	}

	return ErrNoSource
}
