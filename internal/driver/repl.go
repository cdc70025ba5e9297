package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/nfiedler-tsi/tsi-go/internal/ast"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/parser"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// REPL runs the interactive read-eval-print loop: one expression is read,
// analyzed, and evaluated against the driver's global environment per
// iteration, so a later expression can see the effects (and the bindings)
// of an earlier one, and a fault in one doesn't take down the others.
// It returns when in reaches EOF.
func (d *Driver) REPL(in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "Toy Scheme Interpreter v%s  (EOF to exit)\n", Version)
	for {
		fmt.Fprint(out, d.Config.Prompt)
		node, err := readExpression(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		v, err := d.evalNode(node)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if v != value.TheNil {
			fmt.Fprintln(out, v.String())
		}
	}
}

// readExpression accumulates lines from r until a complete expression
// parses: an unterminated form (an open paren with no match yet) just
// prompts for another line instead of failing.
func readExpression(r *bufio.Reader) (ast.Node, error) {
	var buf []byte
	for {
		line, err := r.ReadString('\n')
		buf = append(buf, line...)
		if len(buf) > 0 {
			node, perr := parser.Parse(string(buf))
			if perr == nil {
				return node, nil
			}
			if !errors.Is(perr, parser.ErrIncomplete) {
				return nil, perr
			}
		}
		if err != nil {
			return nil, err
		}
	}
}

func (d *Driver) evalNode(node ast.Node) (value.Value, error) {
	form, err := evaluator.Analyze(node)
	if err != nil {
		return nil, err
	}
	return d.ev.EvalForms([]evaluator.Form{form}, d.ev.GlobalEnv)
}
