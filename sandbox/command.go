package sandbox

import "github.com/sovereign-lang/sovereign/errz"

// CheckCommand fails unless the first element of argv exactly matches an
// entry in the command whitelist. There is no partial or prefix matching,
// and arguments are never interpreted by a shell.
func (p *Policy) CheckCommand(argv []string) error {
	if len(argv) == 0 {
		return errz.New(errz.Sandbox, "Security Violation: empty command")
	}
	if !p.commands[argv[0]] {
		p.log.Debug().Str("command", argv[0]).Msg("command denied")
		return errz.Newf(errz.Sandbox,
			"Security Violation: command %q is not whitelisted", argv[0])
	}
	p.log.Debug().Str("command", argv[0]).Msg("command allowed")
	return nil
}
