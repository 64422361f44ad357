package shell

import (
	"fmt"
	"strings"
	"time"
)

// ToolNotFoundError is returned when the named executable cannot be
// resolved on PATH.
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("❌ tool not found on PATH: %s", e.Tool)
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// TimeoutError is returned when the process exceeded the configured
// timeout and was killed.
type TimeoutError struct {
	Argv    []string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("❌ command timed out after %s: %s", e.Timeout, strings.Join(e.Argv, " "))
}

// CommandFailedError is returned for a non-zero exit when Whiny is
// set. It carries the captured stderr and the exit status.
type CommandFailedError struct {
	Argv       []string
	Stderr     string
	ExitStatus int
}

func (e *CommandFailedError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "no stderr output"
	}
	return fmt.Sprintf("❌ command failed (exit %d): %s: %s", e.ExitStatus, strings.Join(e.Argv, " "), msg)
}
