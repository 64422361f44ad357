package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcmtools/gdcmwrap/pkg/gdcm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gdcmwrap.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndApply(t *testing.T) {
	path := writeConfig(t, `
timeout = "30s"
whiny = false
validate_on_open = false
tmp_dir = "/scratch/dicom"
log_level = "debug"

[tool_paths]
gdcmconv = "/opt/gdcm/bin/gdcmconv"
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", f.LogLevel)

	cfg := gdcm.DefaultConfig()
	require.NoError(t, f.Apply(cfg))

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.Whiny)
	assert.False(t, cfg.ValidateOnOpen)
	assert.Equal(t, "/scratch/dicom", cfg.TmpDir)
	assert.Equal(t, "/opt/gdcm/bin/gdcmconv", cfg.ToolPaths["gdcmconv"])
}

func TestLoadMissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestApplyAbsentKeysKeepDefaults(t *testing.T) {
	cfg := gdcm.DefaultConfig()
	require.NoError(t, File{}.Apply(cfg))

	assert.True(t, cfg.Whiny)
	assert.True(t, cfg.ValidateOnOpen)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
}

func TestApplyBadTimeout(t *testing.T) {
	cfg := gdcm.DefaultConfig()
	err := File{Timeout: "not-a-duration"}.Apply(cfg)
	assert.Error(t, err)
}
