// Package tmpfile allocates the owned temporary files behind opened
// packages and resolves where they live on each platform.
package tmpfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Root returns the directory temporary package files are created in.
func Root() string {
	// Check environment variable first
	if dir := os.Getenv("GDCMWRAP_TMPDIR"); dir != "" {
		return dir
	}

	// Use platform-specific defaults
	switch runtime.GOOS {
	case "darwin", "linux":
		if dir := os.Getenv("TMPDIR"); dir != "" {
			return dir
		}
	}

	return os.TempDir()
}

// New creates an empty temporary file under dir (Root() when empty)
// carrying the given extension and returns its path. The extension
// must be preserved so the wrapped toolkit can sniff file types.
func New(dir, ext string) (string, error) {
	if dir == "" {
		dir = Root()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp root: %w", err)
	}

	f, err := os.CreateTemp(dir, "gdcmwrap-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create tmp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// NewFrom creates a temporary file seeded with the contents of src,
// keeping src's extension. The temporary is removed again when the
// copy fails partway.
func NewFrom(dir, src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	path, err := New(dir, filepath.Ext(src))
	if err != nil {
		return "", err
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		os.Remove(path)
		return "", err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
