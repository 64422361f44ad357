package tmpfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeepsExtension(t *testing.T) {
	dir := t.TempDir()

	path, err := New(dir, ".dcm")
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Equal(t, ".dcm", filepath.Ext(path))
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "gdcmwrap-"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewFromCopiesBytes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scan.dcm")
	require.NoError(t, os.WriteFile(src, []byte("DICM payload"), 0o644))

	path, err := NewFrom(dir, src)
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Equal(t, ".dcm", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("DICM payload"), data)
}

func TestNewFromMissingSource(t *testing.T) {
	_, err := NewFrom(t.TempDir(), "does-not-exist.dcm")
	assert.Error(t, err)
}

func TestRootEnvOverride(t *testing.T) {
	t.Setenv("GDCMWRAP_TMPDIR", "/custom/tmp")
	assert.Equal(t, "/custom/tmp", Root())
}
