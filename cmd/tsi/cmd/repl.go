package cmd

import (
	"fmt"
	"os"

	"github.com/nfiedler-tsi/tsi-go/internal/driver"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive read-eval-print loop",
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(_ *cobra.Command, _ []string) error {
	cfg, err := driver.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}
	d.REPL(os.Stdin, os.Stdout)
	return nil
}
