package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/sovereign-lang/sovereign"
	"github.com/sovereign-lang/sovereign/bytecode"
	"github.com/sovereign-lang/sovereign/compiler"
	"github.com/sovereign-lang/sovereign/loader"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Verify and execute a program document",
		Long: "Loads a program document, verifies its integrity hashes, and " +
			"executes it under the capability policy configured via SOVEREIGN_* " +
			"environment variables. Program output goes to stdout; failures are " +
			"reported on stderr with their error-class keyword.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := sovereign.LoadFile(args[0])
			if err != nil {
				return err
			}
			engine, _ := cmd.Flags().GetString("engine")
			_, err = sovereign.Run(cmd.Context(), program,
				sovereign.WithEngine(sovereign.Engine(engine)),
				sovereign.WithLogger(newLogger(cmd)))
			return err
		},
	}
	cmd.Flags().String("engine", string(sovereign.EngineVM),
		"Execution engine (interp or vm)")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <program>",
		Short: "Verify the integrity hashes of a program document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loader.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newDisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dis <program>",
		Short: "Disassemble the compiled form of a program document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			code, err := compiler.Compile(program)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), bytecode.Disassemble(code))
			return nil
		},
	}
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.Nop()
}
