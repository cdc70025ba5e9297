package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tsi",
	Short: "Toy Scheme Interpreter",
	Long: `tsi is a Go implementation of a small tree-walking Scheme interpreter.

It supports the usual special forms (define, lambda, if, cond, let, and,
or, set!, quote) plus call/cc, implemented with a trampolined evaluator
so that tail calls and captured continuations don't grow the Go stack.

Run with no arguments to start the REPL, or "tsi run" to execute a file.`,
	Version: Version,
	RunE:    runREPL,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
