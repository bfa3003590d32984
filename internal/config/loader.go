package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

const (
	userConfigDir  = ".config/mirrorctl"
	configFileName = "config.yaml"
)

// LoadConfig loads the mirrorctl configuration by layering the optional
// user settings file over the built-in defaults.
func LoadConfig() (ManagerConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. Layer the user-specific configuration, if present
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Log this error but don't fail; user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
		return config, nil
	}

	if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return ManagerConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// loadConfigFromFile loads a ManagerConfig from a YAML file.
func loadConfigFromFile(filePath string) (ManagerConfig, error) {
	var config ManagerConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return ManagerConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return ManagerConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay ManagerConfig) ManagerConfig {
	merged := base

	if overlay.Assembly.Indent != "" {
		merged.Assembly.Indent = overlay.Assembly.Indent
	}
	if overlay.Assembly.PagesModule != "" {
		merged.Assembly.PagesModule = overlay.Assembly.PagesModule
	}
	if overlay.Assembly.Placeholder != "" {
		merged.Assembly.Placeholder = overlay.Assembly.Placeholder
	}
	if overlay.Assembly.BaselineModule != "" {
		merged.Assembly.BaselineModule = overlay.Assembly.BaselineModule
	}

	if len(overlay.Process.KnownNames) > 0 {
		merged.Process.KnownNames = overlay.Process.KnownNames
	}
	if overlay.Process.PathHint != "" {
		merged.Process.PathHint = overlay.Process.PathHint
	}
	if overlay.Process.Fallback != "" {
		merged.Process.Fallback = overlay.Process.Fallback
	}
	if overlay.Process.VerifyTimeout != 0 {
		merged.Process.VerifyTimeout = overlay.Process.VerifyTimeout
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
