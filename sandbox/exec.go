package sandbox

import (
	"context"
	"errors"
	"os/exec"

	"github.com/sovereign-lang/sovereign/errz"
)

// TruncationMarker terminates captured output that exceeded the
// configured limit.
const TruncationMarker = "...[truncated]"

// ExecResult reports a completed subprocess. TimedOut and Truncated are
// metadata, not errors: the caller decides how to surface them.
type ExecResult struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	TimedOut  bool
	Truncated bool
}

// Execute runs a whitelisted command with the policy's timeout and
// output limits. The argument list is passed to the OS as a discrete
// vector; nothing is ever concatenated into a shell string. On timeout
// the process is terminated and the TimedOut flag is set rather than
// returning an error.
func (p *Policy) Execute(ctx context.Context, argv []string) (*ExecResult, error) {
	if err := p.CheckCapability(CapExec); err != nil {
		return nil, err
	}
	if err := p.CheckCommand(argv); err != nil {
		return nil, err
	}
	if !p.allowLocalExec {
		return nil, errz.New(errz.Sandbox,
			"Security Violation: local execution is disabled (set allow_local_exec to enable)")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	stdout := newCapWriter(p.MaxOutputBytes())
	stderr := newCapWriter(p.MaxOutputBytes())

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = p.root
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	result := &ExecResult{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Truncated: stdout.truncated || stderr.truncated,
	}
	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = -1
		p.log.Debug().Str("command", argv[0]).Msg("subprocess timed out")
		return result, nil
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, errz.Newf(errz.Runtime, "exec %s: %s", argv[0], runErr)
	}
	return result, nil
}

// capWriter captures up to limit bytes and records whether anything was
// clipped. Write never fails so the subprocess is not disturbed by the
// limit.
type capWriter struct {
	limit     int
	buf       []byte
	truncated bool
}

func newCapWriter(limit int) *capWriter {
	return &capWriter{limit: limit}
}

func (w *capWriter) Write(data []byte) (int, error) {
	remaining := w.limit - len(w.buf)
	if remaining <= 0 {
		if len(data) > 0 {
			w.truncated = true
		}
		return len(data), nil
	}
	if len(data) > remaining {
		w.buf = append(w.buf, data[:remaining]...)
		w.truncated = true
	} else {
		w.buf = append(w.buf, data...)
	}
	return len(data), nil
}

func (w *capWriter) String() string {
	if w.truncated {
		return string(w.buf) + TruncationMarker
	}
	return string(w.buf)
}
