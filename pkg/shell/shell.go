// Package shell runs external toolkit binaries and captures their
// output. Arguments are always passed as a discrete vector; nothing is
// ever routed through a shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Result holds the captured output of one finished invocation.
// Immutable once returned.
type Result struct {
	Stdout     string
	Stderr     string
	ExitStatus int
}

// Options controls a single invocation.
type Options struct {
	// Stdin, when non-nil, is written in full to the process input
	// stream, which is then closed.
	Stdin []byte
	// Timeout bounds the process runtime. Zero means unbounded.
	Timeout time.Duration
	// Whiny turns any non-zero exit into a *CommandFailedError.
	// When false the caller inspects Result.ExitStatus itself.
	Whiny bool
	// Logger receives one debug line per invocation with the argv
	// and elapsed time.
	Logger hclog.Logger
}

// Runner is the execution backend. The default is ExecRunner; tests
// and alternative spawn strategies plug in here.
type Runner interface {
	Run(ctx context.Context, argv []string, opts Options) (Result, error)
}

// ExecRunner executes argv through os/exec. Each call is independent;
// the zero value is ready to use.
type ExecRunner struct{}

// Run spawns argv[0] with the remaining tokens as its argument vector
// and waits for completion, bounded by opts.Timeout when set.
func (ExecRunner) Run(ctx context.Context, argv []string, opts Options) (Result, error) {
	if len(argv) == 0 {
		return Result{}, fmt.Errorf("empty command")
	}

	binary, err := exec.LookPath(argv[0])
	if err != nil {
		return Result{}, &ToolNotFoundError{Tool: argv[0], Err: err}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stdin != nil {
		cmd.Stdin = bytes.NewReader(opts.Stdin)
	}

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if opts.Logger != nil {
		opts.Logger.Debug("⏱️ command finished", "argv", argv, "elapsed", elapsed.String())
	}

	if ctx.Err() == context.DeadlineExceeded {
		return Result{}, &TimeoutError{Argv: argv, Timeout: opts.Timeout}
	}

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return Result{}, fmt.Errorf("spawn %s: %w", argv[0], runErr)
		}
		res.ExitStatus = exitErr.ExitCode()
		if opts.Whiny {
			return Result{}, &CommandFailedError{
				Argv:       argv,
				Stderr:     res.Stderr,
				ExitStatus: res.ExitStatus,
			}
		}
	}

	return res, nil
}
