// Package intrinsics defines the native functions callable from language
// code and the registry that dispatches them. A registry is an explicit
// table passed to an execution engine at construction time; there is no
// process-global table and nothing can be overridden at runtime from
// language code. Test harnesses build alternate tables via Clone and
// Register.
package intrinsics

import (
	"context"
	"io"
	"os"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/object"
	"github.com/sovereign-lang/sovereign/sandbox"
)

// Registry maps flat intrinsic names (including dotted names such as
// "sys.fs.write") to native implementations. Construction completes
// before any dispatch begins; the table never mutates during execution.
type Registry struct {
	policy *sandbox.Policy
	stdout io.Writer
	log    zerolog.Logger
	runID  string
	table  map[string]*object.Builtin
}

// Option configures a registry under construction.
type Option func(*Registry)

// WithStdout redirects program output (print, mirrored exec output).
func WithStdout(w io.Writer) Option {
	return func(r *Registry) {
		r.stdout = w
	}
}

// WithLogger sets the logger for effect records.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// New builds the full intrinsic table gated by the given policy.
func New(policy *sandbox.Policy, opts ...Option) *Registry {
	r := &Registry{
		policy: policy,
		stdout: os.Stdout,
		log:    zerolog.Nop(),
		table:  map[string]*object.Builtin{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if id, err := uuid.NewV4(); err == nil {
		r.runID = id.String()
	}
	r.log = r.log.With().Str("run_id", r.runID).Logger()
	r.registerCore()
	r.registerFS()
	r.registerExec()
	r.registerNet()
	r.registerCrypto()
	return r
}

// Register adds or replaces an entry. Intended for construction time and
// for test harnesses substituting mocks on a cloned table.
func (r *Registry) Register(name string, fn object.BuiltinFunction) {
	r.table[name] = object.NewBuiltin(name, fn)
}

// Clone returns a copy of the registry whose table can be modified
// without affecting the original.
func (r *Registry) Clone() *Registry {
	table := make(map[string]*object.Builtin, len(r.table))
	for k, v := range r.table {
		table[k] = v
	}
	return &Registry{
		policy: r.policy,
		stdout: r.stdout,
		log:    r.log,
		runID:  r.runID,
		table:  table,
	}
}

// Get returns the builtin registered under the exact given name.
func (r *Registry) Get(name string) (*object.Builtin, bool) {
	b, ok := r.table[name]
	return b, ok
}

// Names returns the registered intrinsic names, unordered.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.table))
	for name := range r.table {
		names = append(names, name)
	}
	return names
}

// Dispatch invokes the intrinsic registered under name. Lookup is by
// exact name; dotted namespaces are flat keys at this layer.
func (r *Registry) Dispatch(ctx context.Context, name string, args []object.Value) (object.Value, error) {
	b, ok := r.table[name]
	if !ok {
		return nil, errz.Newf(errz.Runtime, "undefined function %q", name)
	}
	return b.Call(ctx, args...)
}
