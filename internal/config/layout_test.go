package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMirrorHome(t *testing.T) (home string, mirrorHome string) {
	t.Helper()
	home = t.TempDir()
	mirrorHome = filepath.Join(home, "MagicMirror")
	require.NoError(t, os.MkdirAll(filepath.Join(mirrorHome, "config"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(mirrorHome, "modules"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(mirrorHome, "config", "config.js"), []byte("let config = {};\n"), 0644))
	return home, mirrorHome
}

func TestResolveLayout(t *testing.T) {
	home, mirrorHome := setupMirrorHome(t)

	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return home, nil }
	t.Setenv(mirrorHomeEnv, "")

	layout, err := ResolveLayout()
	require.NoError(t, err)

	assert.Equal(t, mirrorHome, layout.MirrorHome)
	assert.Equal(t, filepath.Join(mirrorHome, "modules"), layout.ModulesDir)
	assert.Equal(t, filepath.Join(mirrorHome, "config", "config.js"), layout.ActiveConfig)
	assert.Equal(t, filepath.Join(home, "my_config"), layout.WorkDir)
	assert.Equal(t, filepath.Join(home, "my_config", "config.Master"), layout.Master)
	assert.Equal(t, filepath.Join(home, "my_config", "templates"), layout.TemplatesDir)
}

func TestResolveLayout_EnvOverride(t *testing.T) {
	home, _ := setupMirrorHome(t)
	altMirror := filepath.Join(home, "mirror-alt")
	require.NoError(t, os.MkdirAll(altMirror, 0755))

	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return home, nil }
	t.Setenv(mirrorHomeEnv, altMirror)

	layout, err := ResolveLayout()
	require.NoError(t, err)
	assert.Equal(t, altMirror, layout.MirrorHome)
}

func TestResolveLayout_MissingInstallation(t *testing.T) {
	home := t.TempDir()

	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return home, nil }
	t.Setenv(mirrorHomeEnv, "")

	_, err := ResolveLayout()
	assert.Error(t, err)
}

func TestLayout_InitSeedsMasterOnce(t *testing.T) {
	home, _ := setupMirrorHome(t)

	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return home, nil }
	t.Setenv(mirrorHomeEnv, "")

	layout, err := ResolveLayout()
	require.NoError(t, err)

	require.NoError(t, layout.Init())

	assert.DirExists(t, layout.WorkDir)
	assert.DirExists(t, layout.TemplatesDir)
	data, err := os.ReadFile(layout.Master)
	require.NoError(t, err)
	assert.Equal(t, "let config = {};\n", string(data))

	// A second Init must not clobber an edited master record.
	require.NoError(t, os.WriteFile(layout.Master, []byte("edited"), 0644))
	require.NoError(t, layout.Init())
	data, err = os.ReadFile(layout.Master)
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))
}
