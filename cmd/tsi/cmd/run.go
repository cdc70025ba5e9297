package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/nfiedler-tsi/tsi-go/internal/driver"
	"github.com/nfiedler-tsi/tsi-go/internal/parser"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Scheme file or expression",
	Long: `Execute a Scheme program from a file or inline expression.

Examples:
  # Run a script file
  tsi run program.scm

  # Evaluate an inline expression
  tsi run -e "(display (+ 1 2))"

  # Run with an execution trace
  tsi run --trace program.scm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace top-level evaluation (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	cfg, err := driver.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	d, err := newDriver(cfg)
	if err != nil {
		return err
	}

	var source, filename string
	switch {
	case evalExpr != "":
		source, filename = evalExpr, "<eval>"
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source, filename = string(content), args[0]
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	if trace {
		nodes, err := parser.ParseProgram(source)
		if err != nil {
			exitWithError("%v", err)
		}
		fmt.Fprintf(os.Stderr, "[trace] %s: %d top-level form(s)\n", filename, len(nodes))
		for _, n := range nodes {
			pretty.Fprintf(os.Stderr, "%# v\n", n)
		}
	}

	if _, err := d.Eval(source); err != nil {
		exitWithError("%v", err)
	}
	return nil
}
