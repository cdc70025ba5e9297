package cmd

import (
	"os"

	"github.com/nfiedler-tsi/tsi-go/internal/driver"
	"github.com/nfiedler-tsi/tsi-go/internal/extension"
	"github.com/nfiedler-tsi/tsi-go/internal/extension/examples/turtlestub"
)

// newDriver builds a Driver wired to the process's stdin/stdout, with the
// extensions this binary ships bundled into its load-ext registry.
func newDriver(cfg driver.Config) (*driver.Driver, error) {
	extReg := extension.NewRegistry()
	extReg.Register(turtlestub.New())
	return driver.New(cfg, os.Stdout, os.Stdin, extReg)
}
