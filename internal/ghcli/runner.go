// Package ghcli runs the GitHub CLI (gh) as a subprocess.
//
// The runner never goes through a shell: arguments are passed verbatim
// and the working directory is set per call, so gh can auto-detect the
// repository of the caller's checkout.
package ghcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// DefaultPath is the executable looked up on $PATH.
const DefaultPath = "gh"

// ErrNotInstalled is returned when the gh executable cannot be found.
var ErrNotInstalled = errors.New("gh: command not found")

// Runner executes gh with args in dir and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs gh through os/exec.
type ExecRunner struct {
	path    string
	timeout time.Duration
}

// NewExecRunner creates a runner for the executable at path. An empty path
// means DefaultPath; a zero timeout means no per-call deadline.
func NewExecRunner(path string, timeout time.Duration) *ExecRunner {
	if path == "" {
		path = DefaultPath
	}
	return &ExecRunner{path: path, timeout: timeout}
}

// Error is a failed gh invocation. Stderr is kept verbatim so callers can
// match on gh's own wording ("not logged in", "Could not resolve").
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("gh %s failed: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run executes gh.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if r.notFound(err) {
			return nil, fmt.Errorf("%w (%s)", ErrNotInstalled, r.path)
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &Error{Args: args, Stderr: strings.TrimSpace(stderr.String()),
				Err: fmt.Errorf("timeout after %v: %w", r.timeout, ctx.Err())}
		}
		return nil, &Error{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	return stdout.Bytes(), nil
}

// notFound reports whether err means the executable itself is missing,
// either from the $PATH lookup or from starting an explicit path.
func (r *ExecRunner) notFound(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var pe *fs.PathError
	return errors.As(err, &pe) && pe.Path == r.path && errors.Is(pe.Err, fs.ErrNotExist)
}
