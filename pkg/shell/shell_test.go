package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helperArgv builds an argv that re-invokes this test binary as a
// stand-in external tool (see TestHelperProcess).
func helperArgv(mode string, args ...string) []string {
	argv := []string{os.Args[0], "-test.run=TestHelperProcess", "--", mode}
	return append(argv, args...)
}

// TestHelperProcess is not a real test: it is the fake external tool
// spawned by the tests below. Re-invocations are recognized by the
// `--` marker in the argument vector; a plain `go test` run passes
// straight through.
func TestHelperProcess(t *testing.T) {
	var args []string
	for i, a := range os.Args {
		if a == "--" {
			args = os.Args[i+1:]
			break
		}
	}
	if len(args) == 0 {
		return
	}
	defer os.Exit(0)

	switch args[0] {
	case "echo":
		fmt.Print(args[1])
	case "fail":
		fmt.Fprint(os.Stderr, args[1])
		os.Exit(7)
	case "sleep":
		time.Sleep(5 * time.Second)
	case "cat":
		if _, err := io.Copy(os.Stdout, os.Stdin); err != nil {
			os.Exit(3)
		}
	}
}

func TestRunCapturesStdout(t *testing.T) {
	res, err := ExecRunner{}.Run(context.Background(), helperArgv("echo", "hello\n"), Options{Whiny: true})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, 0, res.ExitStatus)
}

func TestRunNonZeroExitNotWhiny(t *testing.T) {
	res, err := ExecRunner{}.Run(context.Background(), helperArgv("fail", "boom"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 7, res.ExitStatus)
	assert.Equal(t, "boom", res.Stderr)
}

func TestRunNonZeroExitWhiny(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), helperArgv("fail", "boom"), Options{Whiny: true})
	require.Error(t, err)

	var cmdErr *CommandFailedError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 7, cmdErr.ExitStatus)
	assert.Equal(t, "boom", cmdErr.Stderr)
}

func TestRunToolNotFound(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), []string{"gdcmwrap-no-such-tool"}, Options{})
	require.Error(t, err)

	var nfErr *ToolNotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "gdcmwrap-no-such-tool", nfErr.Tool)
}

func TestRunTimeout(t *testing.T) {
	start := time.Now()
	_, err := ExecRunner{}.Run(context.Background(), helperArgv("sleep"), Options{Timeout: 100 * time.Millisecond})
	require.Error(t, err)

	var toErr *TimeoutError
	require.True(t, errors.As(err, &toErr))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunStdin(t *testing.T) {
	res, err := ExecRunner{}.Run(context.Background(), helperArgv("cat"), Options{
		Stdin: []byte("payload bytes"),
		Whiny: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "payload bytes", res.Stdout)
}

func TestRunEmptyCommand(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), nil, Options{})
	assert.Error(t, err)
}
