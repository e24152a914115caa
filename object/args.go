package object

import "github.com/sovereign-lang/sovereign/errz"

// Require validates an exact argument count for an intrinsic.
func Require(funcName string, count int, args []Value) error {
	nArgs := len(args)
	if nArgs != count {
		if count == 1 {
			return errz.Newf(errz.Type,
				"%s() takes exactly 1 argument (%d given)", funcName, nArgs)
		}
		return errz.Newf(errz.Type,
			"%s() takes exactly %d arguments (%d given)", funcName, count, nArgs)
	}
	return nil
}

// RequireRange validates a bounded argument count for an intrinsic.
func RequireRange(funcName string, min, max int, args []Value) error {
	nArgs := len(args)
	if nArgs < min {
		return errz.Newf(errz.Type,
			"%s() takes at least %d arguments (%d given)", funcName, min, nArgs)
	}
	if nArgs > max {
		return errz.Newf(errz.Type,
			"%s() takes at most %d arguments (%d given)", funcName, max, nArgs)
	}
	return nil
}
