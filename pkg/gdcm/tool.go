// SPDX-License-Identifier: Apache-2.0
package gdcm

import (
	"context"
	"strings"

	"github.com/dcmtools/gdcmwrap/pkg/shell"
)

// Tool accumulates the argument vector for one toolkit invocation.
// Tokens keep their append order; nothing is reordered or
// deduplicated. A Tool is single-use: build, execute, discard.
type Tool struct {
	cfg      *Config
	name     string
	args     []string
	lastFlag int // index of the most recent flag token, -1 when none
}

// NewTool returns a builder for the named executable. A nil cfg uses
// DefaultConfig.
func NewTool(cfg *Config, name string) *Tool {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Tool{cfg: cfg, name: name, lastFlag: -1}
}

// RunTool is the eager form: the callback configures the builder,
// which is then executed immediately. Returns the captured stdout.
func RunTool(cfg *Config, name string, build func(*Tool)) (string, error) {
	t := NewTool(cfg, name)
	if build != nil {
		build(t)
	}
	return t.Execute()
}

// AppendRaw appends one token verbatim. Used for file paths and
// pre-formed flags.
func (t *Tool) AppendRaw(token string) *Tool {
	t.args = append(t.args, token)
	return t
}

// AppendOption maps a conceptual option name to its CLI flag: `--`
// followed by the name with underscores turned into hyphens. Any
// values follow as separate raw tokens. This is the generic path by
// which every toolkit flag, modeled or not, is reachable.
func (t *Tool) AppendOption(name string, values ...string) *Tool {
	t.args = append(t.args, "--"+strings.ReplaceAll(name, "_", "-"))
	t.lastFlag = len(t.args) - 1
	for _, v := range values {
		t.AppendRaw(v)
	}
	return t
}

// Stack wraps the tokens built by the callback between the toolkit's
// `(` and `)` group markers, for nested expression groups.
func (t *Tool) Stack(build func(*Tool)) *Tool {
	sub := NewTool(t.cfg, t.name)
	if build != nil {
		build(sub)
	}
	t.args = append(t.args, "(")
	t.args = append(t.args, sub.args...)
	t.args = append(t.args, ")")
	return t
}

// PromoteLast rewrites the most recently appended flag's leading
// minus into a plus, the toolkit's convention for a flag's negated
// form. Fails when no flag has been appended yet.
func (t *Tool) PromoteLast() error {
	if t.lastFlag < 0 {
		return &StateError{Msg: "no flag to promote to plus form"}
	}
	t.args[t.lastFlag] = strings.Replace(t.args[t.lastFlag], "-", "+", 1)
	return nil
}

// Args returns a copy of the accumulated tokens, without the
// executable name.
func (t *Tool) Args() []string {
	out := make([]string, len(t.args))
	copy(out, t.args)
	return out
}

// Execute finalizes the vector as [executable, tokens..., extra...]
// and runs it. Returns captured stdout with exactly one trailing
// newline stripped: only the final newline character, never all
// trailing whitespace.
func (t *Tool) Execute(extra ...string) (string, error) {
	return t.ExecuteContext(context.Background(), extra...)
}

// ExecuteContext is Execute with caller-supplied cancellation.
func (t *Tool) ExecuteContext(ctx context.Context, extra ...string) (string, error) {
	argv := make([]string, 0, 1+len(t.args)+len(extra))
	argv = append(argv, t.cfg.toolPath(t.name))
	argv = append(argv, t.args...)
	argv = append(argv, extra...)

	res, err := t.cfg.runner().Run(ctx, argv, shell.Options{
		Timeout: t.cfg.Timeout,
		Whiny:   t.cfg.Whiny,
		Logger:  t.cfg.Logger,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(res.Stdout, "\n"), nil
}

// Named builders for the toolkit binaries.

func NewConvert(cfg *Config) *Tool { return NewTool(cfg, ConvertTool) }

func NewInfo(cfg *Config) *Tool { return NewTool(cfg, InfoTool) }

func NewDump(cfg *Config) *Tool { return NewTool(cfg, DumpTool) }

func NewAnonymize(cfg *Config) *Tool { return NewTool(cfg, AnonymizeTool) }

func NewRaw(cfg *Config) *Tool { return NewTool(cfg, RawTool) }

// Eager forms of the named builders.

func RunConvert(cfg *Config, build func(*Tool)) (string, error) {
	return RunTool(cfg, ConvertTool, build)
}

func RunInfo(cfg *Config, build func(*Tool)) (string, error) {
	return RunTool(cfg, InfoTool, build)
}

func RunDump(cfg *Config, build func(*Tool)) (string, error) {
	return RunTool(cfg, DumpTool, build)
}
