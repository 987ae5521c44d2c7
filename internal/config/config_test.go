package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load from picking up a physiz.yaml on the machine.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want.Arena, cfg.Arena)
	assert.Equal(t, want.Log, cfg.Log)
	assert.Empty(t, cfg.Catalog.Path)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  path: /srv/physiz/catalog.yaml
arena:
  questions: 3
  default_tolerance: 0.5
  seed: 42
log:
  level: DEBUG
  env: production
  output: discard
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/physiz/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, 3, cfg.Arena.Questions)
	assert.Equal(t, 0.5, cfg.Arena.DefaultTolerance)
	assert.Equal(t, uint64(42), cfg.Arena.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "production", cfg.Log.Env)
	assert.Equal(t, "discard", cfg.Log.Output)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_SearchesWorkingDirectory(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile("physiz.yaml", []byte("arena:\n  questions: 7\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Arena.Questions)
	assert.Equal(t, 0.1, cfg.Arena.DefaultTolerance)
	assert.NotEmpty(t, cfg.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "physiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arena:\n  questions: 3\n"), 0o644))
	t.Setenv("PHYSIZ_ARENA_QUESTIONS", "9")
	t.Setenv("PHYSIZ_CATALOG_PATH", "/tmp/c.yaml")
	t.Setenv("PHYSIZ_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Arena.Questions)
	assert.Equal(t, "/tmp/c.yaml", cfg.Catalog.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	t.Setenv("PHYSIZ_ARENA_QUESTIONS", "0")
	t.Setenv("PHYSIZ_ARENA_DEFAULT_TOLERANCE", "-1")
	t.Setenv("PHYSIZ_LOG_LEVEL", "loud")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arena.questions must be >= 1, got 0")
	assert.Contains(t, err.Error(), "arena.default_tolerance must be >= 0")
	assert.Contains(t, err.Error(), `log.level must be one of debug, info, warn, error, got "loud"`)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Log.Env = "staging"
	cfg.Log.Output = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.env must be development or production")
	assert.Contains(t, err.Error(), "log.output must not be empty")
}
