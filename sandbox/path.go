package sandbox

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sovereign-lang/sovereign/errz"
)

// CheckPath resolves path to an absolute, symlink-free canonical form and
// validates it against the policy. Containment is computed on the
// canonical form, never the literal string, so traversal via "..",
// symlinks, or absolute-path substitution cannot escape the root.
// On success the canonical path is returned for the caller to use.
func (p *Policy) CheckPath(path string, mode Mode) (string, error) {
	if path == "" {
		return "", errz.New(errz.Sandbox, "Security Violation: empty path")
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(p.root, abs)
	}
	canonical, err := resolveSymlinks(filepath.Clean(abs))
	if err != nil {
		return "", errz.Newf(errz.Sandbox,
			"Security Violation: cannot resolve path %q: %s", path, err)
	}
	if canonical != p.root && !strings.HasPrefix(canonical, p.root+string(filepath.Separator)) {
		p.log.Debug().Str("path", canonical).Msg("path outside working root")
		return "", errz.Newf(errz.Sandbox,
			"Security Violation: path %q escapes the working root", path)
	}
	rel, err := filepath.Rel(p.root, canonical)
	if err != nil {
		return "", errz.Newf(errz.Sandbox,
			"Security Violation: cannot resolve path %q: %s", path, err)
	}
	if p.isProtected(rel) {
		p.log.Debug().Str("path", canonical).Msg("protected path denied")
		return "", errz.Newf(errz.Sandbox,
			"Security Violation: path %q is protected", path)
	}
	required := CapFSRead
	if mode == ModeWrite {
		required = CapFSWrite
	}
	if err := p.CheckCapability(required); err != nil {
		return "", err
	}
	p.log.Debug().Str("path", canonical).Str("mode", mode.String()).Msg("path allowed")
	return canonical, nil
}

// isProtected matches every element of the root-relative path against the
// protected patterns, so a pattern like ".git" also denies files beneath
// that directory.
func (p *Policy) isProtected(rel string) bool {
	elements := strings.Split(rel, string(filepath.Separator))
	for _, pattern := range p.protected {
		for _, element := range elements {
			if ok, _ := filepath.Match(pattern, element); ok {
				return true
			}
		}
	}
	return false
}

// resolveSymlinks canonicalizes a path even when its final components do
// not exist yet (a write may create them). The deepest existing ancestor
// is symlink-resolved and the non-existing suffix is re-appended.
func resolveSymlinks(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}
	dir, base := filepath.Split(path)
	dir = filepath.Clean(dir)
	if dir == path {
		// Reached the volume root without finding an existing ancestor.
		return path, nil
	}
	resolvedDir, err := resolveSymlinks(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}
