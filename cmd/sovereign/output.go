package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// printError writes the failure to stderr. The error text carries its
// class keyword (SandboxViolation, HashMismatch, TypeError, ...) so
// external harnesses can match on it; color is cosmetic and applied only
// on a terminal.
func printError(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint(err.Error()))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}
