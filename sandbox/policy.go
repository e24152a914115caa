// Package sandbox implements the capability policy that gates every
// effectful intrinsic. A policy is constructed once per invocation and is
// immutable afterwards; all checks are pure reads.
package sandbox

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/sovereign-lang/sovereign/errz"
)

// Capability tags that may be granted to a program.
const (
	CapExec    = "exec"
	CapFSRead  = "fs_read"
	CapFSWrite = "fs_write"
	CapNet     = "net"
	CapCrypto  = "crypto"
)

// Mode distinguishes read from write filesystem access.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

func (m Mode) String() string {
	if m == ModeWrite {
		return "write"
	}
	return "read"
}

// DefaultProtectedPaths are denied regardless of granted capabilities:
// build manifests, version-control metadata, and lockfiles.
var DefaultProtectedPaths = []string{
	".git",
	"go.mod",
	"go.sum",
	"Cargo.toml",
	"Cargo.lock",
	"package.json",
	"*.lock",
}

const (
	DefaultMaxOutputKB = 64
	DefaultTimeout     = 30 * time.Second
)

// Config describes a policy to construct. Zero values select deny-all
// defaults.
type Config struct {
	// Capabilities lists the granted capability tags.
	Capabilities []string

	// ProtectedPaths are patterns always denied, in addition to
	// DefaultProtectedPaths. Patterns match path elements.
	ProtectedPaths []string

	// AllowedCommands whitelists external commands by their first
	// argument, matched exactly.
	AllowedCommands []string

	// Root is the working-directory root that confines all filesystem
	// access. Defaults to the process working directory.
	Root string

	// MaxOutputKB bounds captured subprocess output.
	MaxOutputKB int

	// Timeout bounds each effectful operation.
	Timeout time.Duration

	// AllowLocalExec enables subprocess execution. Disabled by default
	// even when the exec capability is granted.
	AllowLocalExec bool

	// Logger receives debug records of every sandbox decision.
	Logger zerolog.Logger
}

// Policy is an immutable set of sandbox rules.
type Policy struct {
	caps           map[string]bool
	protected      []string
	commands       map[string]bool
	root           string
	maxOutputKB    int
	timeout        time.Duration
	allowLocalExec bool
	log            zerolog.Logger
}

// New builds a policy from the given configuration. The root is resolved
// to a symlink-free absolute path so containment checks compare canonical
// forms on both sides.
func New(cfg Config) (*Policy, error) {
	root := cfg.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errz.Newf(errz.Runtime, "cannot determine working directory: %s", err)
		}
		root = wd
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errz.Newf(errz.Runtime, "invalid sandbox root %q: %s", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolved
	}
	caps := make(map[string]bool, len(cfg.Capabilities))
	for _, c := range cfg.Capabilities {
		if c != "" {
			caps[c] = true
		}
	}
	commands := make(map[string]bool, len(cfg.AllowedCommands))
	for _, c := range cfg.AllowedCommands {
		if c != "" {
			commands[c] = true
		}
	}
	maxOutputKB := cfg.MaxOutputKB
	if maxOutputKB <= 0 {
		maxOutputKB = DefaultMaxOutputKB
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	protected := append([]string{}, DefaultProtectedPaths...)
	protected = append(protected, cfg.ProtectedPaths...)
	return &Policy{
		caps:           caps,
		protected:      protected,
		commands:       commands,
		root:           absRoot,
		maxOutputKB:    maxOutputKB,
		timeout:        timeout,
		allowLocalExec: cfg.AllowLocalExec,
		log:            cfg.Logger,
	}, nil
}

// DenyAll returns a policy with no capabilities, no commands, and the
// given root. Checks against it fail closed.
func DenyAll(root string) (*Policy, error) {
	return New(Config{Root: root})
}

// Root returns the canonical working-directory root.
func (p *Policy) Root() string {
	return p.root
}

// Timeout returns the bound applied to each effectful operation.
func (p *Policy) Timeout() time.Duration {
	return p.timeout
}

// MaxOutputBytes returns the captured-output limit in bytes.
func (p *Policy) MaxOutputBytes() int {
	return p.maxOutputKB * 1024
}

// CheckCapability fails unless the tag is present in the active
// capability set.
func (p *Policy) CheckCapability(tag string) error {
	if !p.caps[tag] {
		p.log.Debug().Str("capability", tag).Msg("capability denied")
		return errz.Newf(errz.Sandbox,
			"Security Violation: capability %q is not granted", tag)
	}
	p.log.Debug().Str("capability", tag).Msg("capability granted")
	return nil
}
