package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess     = 0
	ExitUsageError  = 1
	ExitOutputError = 2
)

const usageLine = "Usage: srclens <file.cpp>"

// UsageError is a command-line mistake detected before any analysis runs.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// exitError carries a specific exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// Run executes the command line and returns an exit code.
func Run() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(root.Execute(), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, ue.Msg)
		fmt.Fprintln(stderr, usageLine)
		return ExitUsageError
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsageError
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	a := &analyzeFlags{}

	root := &cobra.Command{
		Use:   "srclens <file.cpp>",
		Short: "Review a C++ source file with AI models and pattern heuristics",
		Long: "srclens reviews one C++ source file with a remote Hugging Face model, a local " +
			"Ollama model and a built-in pattern scanner, and saves the combined report next to the file.",
		Args:          checkArity,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, g, a, args[0])
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file path (default: $XDG_CONFIG_HOME/srclens/config.yaml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	addAnalyzeFlags(root, a)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newRulesCmd(g))
	root.AddCommand(newCacheCmd(g))
	return root
}

func checkArity(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageErrorf("expected exactly one source file, got %d arguments", len(args))
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print srclens version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "srclens version %s\n", version)
		},
	}
}
