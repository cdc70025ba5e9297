package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/nfiedler-tsi/tsi-go/internal/builtins"
	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/extension"
	"github.com/nfiedler-tsi/tsi-go/internal/stdlib"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// Driver owns one running interpreter instance: a global environment
// already seeded with the primitive table and the Scheme-level bootstrap
// library, ready to evaluate further source either a whole file at a
// time or one REPL expression at a time.
type Driver struct {
	Config Config

	ev     *evaluator.Evaluator
	extReg *extension.Registry
}

// New builds a Driver with a fresh evaluator. extReg may be nil; pass one
// built by a host embedding the interpreter to make load-ext resolve to
// something.
func New(cfg Config, stdout io.Writer, stdin io.Reader, extReg *extension.Registry) (*Driver, error) {
	ev := evaluator.New(stdout, stdin)
	builtins.Default(extReg).InstallInto(ev.GlobalEnv)
	if _, err := ev.LoadSource(stdlib.Source); err != nil {
		return nil, fmt.Errorf("loading bootstrap library: %w", err)
	}
	return &Driver{Config: cfg, ev: ev, extReg: extReg}, nil
}

// Evaluator exposes the underlying evaluator, for callers (pkg/tsi) that
// need lower-level access than Eval/LoadFile provide.
func (d *Driver) Evaluator() *evaluator.Evaluator { return d.ev }

// Eval parses and evaluates source in its entirety, returning the value
// of its last top-level form.
func (d *Driver) Eval(source string) (value.Value, error) {
	return d.ev.LoadSource(source)
}

// LoadFile reads and evaluates the file at path.
func (d *Driver) LoadFile(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, langerr.Newf("cannot read file %q: %v", path, err)
	}
	return d.Eval(string(data))
}
