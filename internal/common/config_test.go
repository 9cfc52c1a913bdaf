package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "movies", cfg.Datasets.DefaultCollection)
	assert.Equal(t, LLMProviderGemini, cfg.LLM.DefaultProvider)
	assert.Equal(t, "vercel", cfg.Deploy.Command)
	assert.Equal(t, 1000, cfg.Jobs.LogCap)

	require.NoError(t, Validate(cfg))
}

func TestLoadFromFiles_LayeredOverrides(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	require.NoError(t, os.WriteFile(base, []byte(`
[server]
port = 9000

[datasets]
dir = "/data/sets"
`), 0644))

	local := filepath.Join(dir, "local.toml")
	require.NoError(t, os.WriteFile(local, []byte(`
[server]
port = 9001
`), 0644))

	cfg, err := LoadFromFiles(base, local)
	require.NoError(t, err)

	// Later files win; untouched values keep earlier layers
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "/data/sets", cfg.Datasets.Dir)
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestLoadFromFiles_EnvOverridesFiles(t *testing.T) {
	t.Setenv("SITESMITH_SERVER_PORT", "7777")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
}

func TestLoadFromFiles_PrefixedEnvWinsOverVendorEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "vendor")
	t.Setenv("SITESMITH_GEMINI_API_KEY", "prefixed")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Gemini.APIKey)
}

func TestLoadFromFiles_MissingFileFails(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Logging.Level = "loud"
	assert.Error(t, Validate(cfg))

	cfg = NewDefaultConfig()
	cfg.Server.Port = -1
	assert.Error(t, Validate(cfg))

	cfg = NewDefaultConfig()
	cfg.LLM.DefaultProvider = "bard"
	assert.Error(t, Validate(cfg))
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 1234, "0.0.0.0")
	assert.Equal(t, 1234, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Zero values leave config untouched
	ApplyFlagOverrides(cfg, 0, "")
	assert.Equal(t, 1234, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestNewJobID(t *testing.T) {
	a := NewJobID()
	b := NewJobID()
	assert.Contains(t, a, "job_")
	assert.NotEqual(t, a, b)
}
