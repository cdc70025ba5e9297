package cmd

import (
	"fmt"

	"github.com/nfiedler-tsi/tsi-go/internal/builtins"
	"github.com/spf13/cobra"
)

var primitivesCmd = &cobra.Command{
	Use:   "primitives",
	Short: "List the interpreter's built-in procedures",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		reg := builtins.Default(nil)
		for _, name := range reg.Names() {
			entry, _ := reg.Get(name)
			fmt.Printf("%-18s %-12s %s\n", entry.Name, entry.Category, entry.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(primitivesCmd)
}
