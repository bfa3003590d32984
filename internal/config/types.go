package config

import (
	"time"
)

// ManagerConfig is the top-level configuration structure for mirrorctl.
type ManagerConfig struct {
	Assembly AssemblySettings `yaml:"assembly"`
	Process  ProcessSettings  `yaml:"process"`
}

// AssemblySettings controls how the output document is put together.
type AssemblySettings struct {
	// Indent is the canonical indentation prefix prepended to every
	// fragment when the config is assembled.
	Indent string `yaml:"indent,omitempty"`
	// PagesModule is the name of the module that provides paged layouts.
	// Its presence in the master record enables the paged test flow.
	PagesModule string `yaml:"pagesModule,omitempty"`
	// Placeholder is the token inside the pages template that gets
	// replaced with the module under test.
	Placeholder string `yaml:"placeholder,omitempty"`
	// BaselineModule is the minimal companion module used when testing a
	// candidate side by side on two pages.
	BaselineModule string `yaml:"baselineModule,omitempty"`
}

// ProcessSettings controls how the running MagicMirror process is located
// and restarted for verification.
type ProcessSettings struct {
	// KnownNames are pm2 process names accepted as-is during detection.
	KnownNames []string `yaml:"knownNames,omitempty"`
	// PathHint is matched (case-insensitively) against a process's
	// execution path during detection.
	PathHint string `yaml:"pathHint,omitempty"`
	// Fallback is the process name used when detection is inconclusive.
	Fallback string `yaml:"fallback,omitempty"`
	// VerifyTimeout bounds the restart/verification call. A timeout is
	// treated as a verification failure and triggers rollback.
	VerifyTimeout time.Duration `yaml:"verifyTimeout,omitempty"`
}
