// Package config loads the optional gdcmwrap.toml file the CLI reads
// its defaults from.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dcmtools/gdcmwrap/pkg/gdcm"
)

// File maps gdcmwrap.toml keys onto runtime settings. Pointer fields
// distinguish "absent" from "explicitly false".
type File struct {
	Timeout        string            `toml:"timeout"`
	Whiny          *bool             `toml:"whiny"`
	ValidateOnOpen *bool             `toml:"validate_on_open"`
	TmpDir         string            `toml:"tmp_dir"`
	LogLevel       string            `toml:"log_level"`
	ToolPaths      map[string]string `toml:"tool_paths"`
}

// Load reads and decodes path. A missing file is not an error; it
// just yields the zero File.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Apply overlays the file's settings onto cfg. Absent keys leave the
// defaults alone.
func (f File) Apply(cfg *gdcm.Config) error {
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", f.Timeout, err)
		}
		cfg.Timeout = d
	}
	if f.Whiny != nil {
		cfg.Whiny = *f.Whiny
	}
	if f.ValidateOnOpen != nil {
		cfg.ValidateOnOpen = *f.ValidateOnOpen
	}
	if f.TmpDir != "" {
		cfg.TmpDir = f.TmpDir
	}
	if len(f.ToolPaths) > 0 {
		if cfg.ToolPaths == nil {
			cfg.ToolPaths = make(map[string]string, len(f.ToolPaths))
		}
		for name, p := range f.ToolPaths {
			cfg.ToolPaths[name] = p
		}
	}
	return nil
}
