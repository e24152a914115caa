// Command sovereign runs, verifies, and disassembles Sovereign program
// documents under a capability sandbox configured from the environment.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sovereign",
		Short:         "Sandboxed execution engine for the Sovereign language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")
	root.AddCommand(newRunCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newDisCmd())
	return root
}
