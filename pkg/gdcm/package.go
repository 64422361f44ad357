// SPDX-License-Identifier: Apache-2.0
package gdcm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dcmtools/gdcmwrap/internal/tmpfile"
)

// Package wraps a single DICOM file path. Opened packages own a
// disposable temporary and may be mutated freely; constructed
// packages wrap the caller's path and convert it in place. The
// ownership flag is the only thing separating "safe to discard" from
// "must not touch the original", so it is never inferred, only set at
// construction.
//
// A Package is not safe for concurrent use; callers serialize.
type Package struct {
	cfg      *Config
	path     string
	ownedTmp bool
	info     map[string]string
}

// Open copies the file at path into a fresh owned temporary and
// returns a Package wrapping it. When cfg.ValidateOnOpen is set the
// copy is identified with gdcminfo first; a rejected copy is deleted
// again before the error returns.
func Open(cfg *Config, path string) (*Package, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tmp, err := tmpfile.NewFrom(cfg.TmpDir, path)
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}

	p := &Package{cfg: cfg, path: tmp, ownedTmp: true}
	if cfg.ValidateOnOpen {
		if err := p.Validate(); err != nil {
			p.Destroy()
			return nil, err
		}
	}
	return p, nil
}

// NewPackage wraps path directly, without copying. Conversions will
// mutate the original reference in place.
func NewPackage(cfg *Config, path string) *Package {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Package{cfg: cfg, path: path}
}

// Path returns the currently wrapped file path.
func (p *Package) Path() string { return p.path }

// Owned reports whether the wrapped path is a disposable temporary.
func (p *Package) Owned() bool { return p.ownedTmp }

// Convert runs gdcmconv from the wrapped path to a newly computed
// output path. The callback adds the conversion flags; input and
// output paths are appended after them. On success an owned package
// deletes its previous temporary and adopts the new one; an unowned
// package deletes the old file (unless the paths are identical) and
// rewrites its path to the `.dcm` sibling. Cached info is dropped.
func (p *Package) Convert(build func(*Tool)) error {
	out, err := p.convertTarget()
	if err != nil {
		return err
	}

	t := NewConvert(p.cfg)
	if build != nil {
		build(t)
	}
	t.AppendRaw(p.path)
	t.AppendRaw(out)

	if _, err := t.Execute(); err != nil {
		// Never leak the half-written output.
		if out != p.path {
			os.Remove(out)
		}
		return err
	}

	old := p.path
	p.path = out
	p.info = nil
	if old != out {
		os.Remove(old)
		removeCacheCompanion(old)
	}
	return nil
}

func (p *Package) convertTarget() (string, error) {
	if p.ownedTmp {
		return tmpfile.New(p.cfg.TmpDir, filepath.Ext(p.path))
	}
	return strings.TrimSuffix(p.path, filepath.Ext(p.path)) + ".dcm", nil
}

// Write copies the wrapped file's bytes to dest. No state change.
func (p *Package) Write(dest string) error {
	in, err := os.Open(p.path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return out.Close()
}

// WriteTo streams the wrapped file's bytes to w, satisfying
// io.WriterTo. No state change.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	in, err := os.Open(p.path)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	return io.Copy(w, in)
}

// Validate identifies the wrapped file with gdcminfo. A toolkit
// rejection comes back as *InvalidPackageError. Validation always
// treats a non-zero exit as a failure, whatever the Config's Whiny.
func (p *Package) Validate() error {
	_, err := RunInfo(p.cfg.whinyCopy(), func(t *Tool) {
		t.AppendRaw(p.path)
	})
	if err != nil {
		return &InvalidPackageError{Path: p.path, Err: err}
	}
	return nil
}

// Valid reports whether Validate succeeds.
func (p *Package) Valid() bool {
	return p.Validate() == nil
}

// Destroy deletes the owned temporary, and its `.cache` companion for
// the `.mpc` disk-cache format. Unowned packages are left alone.
// Calling Destroy twice is harmless.
func (p *Package) Destroy() {
	if !p.ownedTmp {
		return
	}
	os.Remove(p.path)
	removeCacheCompanion(p.path)
}

// Info identifies the wrapped file and returns the scraped metadata.
// The result is cached until the next Convert or ResetInfo.
func (p *Package) Info() (map[string]string, error) {
	if p.info != nil {
		return p.info, nil
	}
	raw, err := RunInfo(p.cfg, func(t *Tool) {
		t.AppendRaw(p.path)
	})
	if err != nil {
		return nil, err
	}
	p.info = ParseInfo(raw)
	return p.info, nil
}

// ResetInfo drops the cached metadata so the next Info re-runs the
// identify invocation.
func (p *Package) ResetInfo() { p.info = nil }

func removeCacheCompanion(path string) {
	if strings.EqualFold(filepath.Ext(path), ".mpc") {
		os.Remove(strings.TrimSuffix(path, filepath.Ext(path)) + ".cache")
	}
}
