// SPDX-License-Identifier: Apache-2.0
// Package gdcm wraps the GDCM command-line toolkit (gdcmconv,
// gdcminfo and friends) behind a small object façade. All decoding,
// transcoding and validation happens inside the external binaries;
// this package only builds argument vectors, manages temporaries and
// scrapes tool output.
package gdcm

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dcmtools/gdcmwrap/pkg/logging"
	"github.com/dcmtools/gdcmwrap/pkg/shell"
)

// Default executable names, resolved via PATH. Overridable per Config
// through ToolPaths.
const (
	ConvertTool   = "gdcmconv"
	InfoTool      = "gdcminfo"
	DumpTool      = "gdcmdump"
	AnonymizeTool = "gdcmanon"
	RawTool       = "gdcmraw"
)

// Config carries the process-wide knobs for tool invocations. Build
// one with DefaultConfig at startup, adjust it, and hand the same
// pointer to every Tool and Package. There is no global state; two
// Configs never interfere.
type Config struct {
	// Timeout bounds each external invocation. Zero means unbounded.
	Timeout time.Duration
	// Whiny makes any non-zero exit an error.
	Whiny bool
	// ValidateOnOpen runs gdcminfo against freshly opened packages.
	ValidateOnOpen bool
	// TmpDir overrides where owned temporaries are allocated.
	// Empty means the platform default.
	TmpDir string
	// Logger receives per-invocation command and timing lines.
	Logger hclog.Logger
	// Runner is the execution backend. Tests inject fakes here.
	Runner shell.Runner
	// ToolPaths maps a default executable name (e.g. ConvertTool) to
	// an explicit binary path.
	ToolPaths map[string]string
}

// DefaultConfig returns the documented defaults: whiny, validating,
// unbounded timeout, PATH-resolved binaries, env-configured logging.
func DefaultConfig() *Config {
	return &Config{
		Whiny:          true,
		ValidateOnOpen: true,
		Logger:         logging.NewLogger("gdcmwrap", logging.GetLogLevel(), nil),
		Runner:         shell.ExecRunner{},
	}
}

func (c *Config) runner() shell.Runner {
	if c.Runner == nil {
		return shell.ExecRunner{}
	}
	return c.Runner
}

func (c *Config) toolPath(name string) string {
	if p, ok := c.ToolPaths[name]; ok && p != "" {
		return p
	}
	return name
}

// whinyCopy returns a copy of c that always treats non-zero exits as
// errors. Validation needs this regardless of the caller's Whiny.
func (c *Config) whinyCopy() *Config {
	cp := *c
	cp.Whiny = true
	return &cp
}
