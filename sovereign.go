// Package sovereign is the embedding facade for the Sovereign execution
// engine. It wires the loader, integrity layer, sandbox policy, intrinsic
// registry, and one of the two execution engines behind a small options
// API:
//
//	program, err := sovereign.LoadFile("prog.ast.json")
//	if err != nil { ... }
//	result, err := sovereign.Run(ctx, program, sovereign.WithEngine(sovereign.EngineVM))
//
// The interpreter and the virtual machine are interchangeable and must
// remain observationally equivalent; the engine option selects one.
package sovereign

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/sovereign-lang/sovereign/ast"
	"github.com/sovereign-lang/sovereign/compiler"
	"github.com/sovereign-lang/sovereign/interp"
	"github.com/sovereign-lang/sovereign/intrinsics"
	"github.com/sovereign-lang/sovereign/loader"
	"github.com/sovereign-lang/sovereign/object"
	"github.com/sovereign-lang/sovereign/sandbox"
	"github.com/sovereign-lang/sovereign/vm"
)

// Engine selects an execution engine.
type Engine string

const (
	// EngineInterp is the reference tree-walking interpreter.
	EngineInterp Engine = "interp"
	// EngineVM is the bytecode virtual machine.
	EngineVM Engine = "vm"
)

// Option configures an execution.
type Option func(*config)

type config struct {
	engine   Engine
	policy   *sandbox.Policy
	registry *intrinsics.Registry
	stdout   io.Writer
	logger   zerolog.Logger
}

// WithEngine selects the execution engine. The default is the VM.
func WithEngine(engine Engine) Option {
	return func(c *config) {
		c.engine = engine
	}
}

// WithPolicy supplies a sandbox policy. Without it the policy is read
// from the environment and fails closed.
func WithPolicy(policy *sandbox.Policy) Option {
	return func(c *config) {
		c.policy = policy
	}
}

// WithRegistry supplies a prebuilt intrinsic table, overriding the
// default set. Test harnesses use this to substitute mocks.
func WithRegistry(registry *intrinsics.Registry) Option {
	return func(c *config) {
		c.registry = registry
	}
}

// WithStdout redirects program output.
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// LoadFile reads, verifies, and decodes a program document. A document
// whose integrity envelopes fail verification never yields a program.
func LoadFile(path string) (*ast.Program, error) {
	return loader.Load(path)
}

// Run executes a verified program and returns the value of its final
// top-level statement.
func Run(ctx context.Context, program *ast.Program, opts ...Option) (object.Value, error) {
	cfg := &config{
		engine: EngineVM,
		stdout: os.Stdout,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	registry := cfg.registry
	if registry == nil {
		policy := cfg.policy
		if policy == nil {
			var err error
			policy, err = sandbox.FromEnv(cfg.logger)
			if err != nil {
				return nil, err
			}
		}
		registry = intrinsics.New(policy,
			intrinsics.WithStdout(cfg.stdout),
			intrinsics.WithLogger(cfg.logger))
	}
	switch cfg.engine {
	case EngineInterp:
		return interp.New(registry).Run(ctx, program)
	default:
		code, err := compiler.Compile(program)
		if err != nil {
			return nil, err
		}
		return vm.Run(ctx, code, registry)
	}
}
