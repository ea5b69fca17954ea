package granitectl

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// invokeTimeout is the hard per-invocation budget. It is enforced
// independently per invocation; expiry kills the child process.
const invokeTimeout = 60 * time.Second

// invocation is the captured output of one engine run. It is owned by the
// request that triggered it and discarded once parsed.
type invocation struct {
	stdout  string
	stderr  string
	elapsed time.Duration
}

// runner abstracts engine invocation so format negotiation and request
// handling can be tested without spawning processes.
type runner interface {
	run(ctx context.Context, args ...string) (*invocation, error)
}

// execRunner invokes the resolved engine binary via os/exec.
type execRunner struct {
	logger  *slog.Logger
	timeout time.Duration
}

func (r *execRunner) run(ctx context.Context, args ...string) (*invocation, error) {
	return r.runAt(ctx, Resolve(r.logger), args...)
}

// runAt spawns the engine at loc with args and captures both streams. For
// provenances with a concrete path, existence is checked before spawning so
// the caller gets a precise "not found at path" message; PATH resolution is
// left to the spawn call itself.
func (r *execRunner) runAt(ctx context.Context, loc Location, args ...string) (*invocation, error) {
	if loc.preflight() {
		if _, err := os.Stat(loc.Path); errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundAt(loc)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, loc.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, &TimeoutError{Budget: r.timeout}
	case ctx.Err() != nil:
		return nil, &ExecutionError{Err: ctx.Err()}
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			return nil, &ExitError{Stderr: decode(stderr.Bytes())}
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			return nil, notFoundAt(loc)
		default:
			return nil, &ExecutionError{Err: err}
		}
	}

	r.logger.Debug("granitectl finished", "args", args, "elapsed", elapsed)
	return &invocation{
		stdout:  decode(stdout.Bytes()),
		stderr:  decode(stderr.Bytes()),
		elapsed: elapsed,
	}, nil
}

// decode converts raw process output to text, substituting the Unicode
// replacement character for invalid byte sequences. Bad encoding must never
// fail an otherwise-successful invocation.
func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
