package intrinsics

import (
	"context"
	"fmt"

	"github.com/sovereign-lang/sovereign/object"
)

func (r *Registry) registerExec() {
	r.Register("sys.exec", r.sysExec)
}

// sysExec runs a whitelisted command and returns a namespace with the
// captured streams and metadata flags. Captured stdout is also mirrored
// to the engine's output stream, so subprocess output is an observable
// side effect shared by both engines.
func (r *Registry) sysExec(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("sys.exec", 1, args); err != nil {
		return nil, err
	}
	argv, err := object.AsStringList(args[0])
	if err != nil {
		return nil, err
	}
	result, err := r.policy.Execute(ctx, argv)
	if err != nil {
		return nil, err
	}
	if result.Stdout != "" {
		fmt.Fprint(r.stdout, result.Stdout)
	}
	r.log.Debug().
		Strs("argv", argv).
		Int("exit_code", result.ExitCode).
		Bool("timed_out", result.TimedOut).
		Bool("truncated", result.Truncated).
		Msg("exec")
	return object.NewNamespace(map[string]object.Value{
		"stdout":    object.NewString(result.Stdout),
		"stderr":    object.NewString(result.Stderr),
		"code":      object.NewInt(int64(result.ExitCode)),
		"timed_out": object.NewBool(result.TimedOut),
		"truncated": object.NewBool(result.Truncated),
	}), nil
}
