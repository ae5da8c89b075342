package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, "module", cfg.LanguageOptions.SourceType)
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gojslint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  no-var: error
  semi: [2, always]
envs: [node]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.SeverityError, cfg.Rules["no-var"].Severity)
	assert.Equal(t, []any{"always"}, cfg.Rules["semi"].Options)
	assert.Equal(t, []string{"node"}, cfg.Envs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  no-var: loud\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
