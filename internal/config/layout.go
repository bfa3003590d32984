package config

import (
	"fmt"
	"os"
	"path/filepath"

	"mirrorctl/pkg/logging"
)

// mirrorHomeEnv overrides the MagicMirror installation directory.
const mirrorHomeEnv = "MAGICMIRROR_HOME"

// Layout resolves every path mirrorctl reads or writes. All paths are
// absolute once ResolveLayout returns.
type Layout struct {
	// The MagicMirror installation.
	MirrorHome   string // $MAGICMIRROR_HOME or ~/MagicMirror
	ModulesDir   string // <MirrorHome>/modules
	ActiveConfig string // <MirrorHome>/config/config.js

	// The mirrorctl working directory.
	WorkDir      string // ~/my_config
	Master       string // <WorkDir>/config.Master
	MasterBackup string // <WorkDir>/config.Master.bak
	ActiveBackup string // <WorkDir>/config.js.bak
	TemplatesDir string // <WorkDir>/templates
	HeadPath     string // <WorkDir>/head
	TailPath     string // <WorkDir>/tail
	PagesPath    string // <WorkDir>/pages
}

// ResolveLayout computes the on-disk layout from the environment. It fails
// when the MagicMirror installation directory does not exist; nothing has
// been mutated at that point, so callers abort without a transaction.
func ResolveLayout() (Layout, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return Layout{}, fmt.Errorf("cannot determine home directory: %w", err)
	}

	mirrorHome := os.Getenv(mirrorHomeEnv)
	if mirrorHome == "" {
		mirrorHome = filepath.Join(homeDir, "MagicMirror")
	}

	if _, err := os.Stat(mirrorHome); err != nil {
		return Layout{}, fmt.Errorf("MagicMirror directory not found at %s: %w", mirrorHome, err)
	}

	workDir := filepath.Join(homeDir, "my_config")

	return Layout{
		MirrorHome:   mirrorHome,
		ModulesDir:   filepath.Join(mirrorHome, "modules"),
		ActiveConfig: filepath.Join(mirrorHome, "config", "config.js"),
		WorkDir:      workDir,
		Master:       filepath.Join(workDir, "config.Master"),
		MasterBackup: filepath.Join(workDir, "config.Master.bak"),
		ActiveBackup: filepath.Join(workDir, "config.js.bak"),
		TemplatesDir: filepath.Join(workDir, "templates"),
		HeadPath:     filepath.Join(workDir, "head"),
		TailPath:     filepath.Join(workDir, "tail"),
		PagesPath:    filepath.Join(workDir, "pages"),
	}, nil
}

// Init creates the working directory structure and seeds the master record
// from the currently active config on first run. It never touches an
// existing master record.
func (l Layout) Init() error {
	if err := os.MkdirAll(l.WorkDir, 0755); err != nil {
		return fmt.Errorf("failed to create working directory %s: %w", l.WorkDir, err)
	}
	if err := os.MkdirAll(l.TemplatesDir, 0755); err != nil {
		return fmt.Errorf("failed to create templates directory %s: %w", l.TemplatesDir, err)
	}

	if _, err := os.Stat(l.Master); os.IsNotExist(err) {
		logging.Info("config", "Creating %s from %s", filepath.Base(l.Master), l.ActiveConfig)
		data, err := os.ReadFile(l.ActiveConfig)
		if err != nil {
			return fmt.Errorf("failed to seed master record from %s: %w", l.ActiveConfig, err)
		}
		if err := os.WriteFile(l.Master, data, 0644); err != nil {
			return fmt.Errorf("failed to write master record %s: %w", l.Master, err)
		}
	}

	return nil
}
