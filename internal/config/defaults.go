package config

import (
	"time"
)

// GetDefaultConfig returns the built-in configuration. User settings are
// layered on top of these values by LoadConfig.
func GetDefaultConfig() ManagerConfig {
	return ManagerConfig{
		Assembly: AssemblySettings{
			Indent:         "      ",
			PagesModule:    "MMM-pages",
			Placeholder:    "MODULE",
			BaselineModule: "clock",
		},
		Process: ProcessSettings{
			KnownNames:    []string{"magicmirror", "mm", "magic-mirror"},
			PathHint:      "magicmirror",
			Fallback:      "MagicMirror",
			VerifyTimeout: 30 * time.Second,
		},
	}
}
