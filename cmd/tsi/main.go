// Command tsi is the command-line interpreter: run a script file, evaluate
// an inline expression, start the interactive REPL, or inspect the
// parser/primitive table directly.
package main

import (
	"os"

	"github.com/nfiedler-tsi/tsi-go/cmd/tsi/cmd"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and returns its exit code. Split out from main so
// the testscript harness can invoke it in-process as a simulated
// subprocess rather than spawning a real binary per test case.
func run() int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
