package builtins

import (
	"fmt"
	"os"
	"strings"

	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/extension"
	"github.com/nfiedler-tsi/tsi-go/internal/parser"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// registerSystem wires the procedures that touch the world outside the
// evaluator's own stack: applying a procedure to a computed argument
// list, reading/loading source, raising and halting, and writing output.
// extReg may be nil, in which case load-ext always reports "no such
// extension" — a program that never calls load-ext never needs one.
func registerSystem(r *Registry, extReg *extension.Registry) {
	r.register("apply", primApply, false, CategorySystem, "apply a procedure to a list of arguments")
	r.register("read", primRead, false, CategorySystem, "read one datum from standard input")
	r.register("load", primLoad, false, CategorySystem, "load and evaluate a source file")
	r.register("load-ext", extLoader(extReg), false, CategorySystem, "load a host-registered extension")
	r.register("error", primError, true, CategorySystem, "raise an error with the given message")
	r.register("exit", primExit, false, CategorySystem, "terminate the process")
	r.register("display", primDisplay, false, CategorySystem, "write a value with no trailing newline")
	r.register("print", primPrint, false, CategorySystem, "write values separated by spaces, then a newline")
	r.register("newline", primNewline, false, CategorySystem, "write a newline")
}

func primApply(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 2); err != nil {
		return nil, nil, err
	}
	proc, ok := args[0].(evaluator.Procedure)
	if !ok {
		return nil, nil, langerr.New("apply: first argument must be a procedure")
	}
	items, ok := toSlice(args[1])
	if !ok {
		return nil, nil, langerr.New("apply: second argument must be a list")
	}
	return proc.Apply(items, ev)
}

func toSlice(v value.Value) ([]value.Value, bool) {
	if _, ok := v.(value.Nil); ok {
		return nil, true
	}
	p, ok := v.(*value.Pair)
	if !ok {
		return nil, false
	}
	return p.ToSlice()
}

func primRead(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 0); err != nil {
		return nil, nil, err
	}
	v, err := ev.ReadDatum()
	if err != nil {
		return nil, nil, err
	}
	return v, nil, nil
}

func primLoad(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 1); err != nil {
		return nil, nil, err
	}
	name, err := wantString(args[0])
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(string(name))
	if err != nil {
		return nil, nil, langerr.Newf("cannot load %s: %v", string(name), err)
	}
	nodes, err := parser.ParseProgram(string(data))
	if err != nil {
		return nil, nil, err
	}
	forms, err := evaluator.AnalyzeMany(nodes)
	if err != nil {
		return nil, nil, err
	}
	if len(forms) == 0 {
		return value.TheNil, nil, nil
	}
	return nil, evaluator.NewRequest(ev.GlobalEnv, true, forms...), nil
}

func extLoader(extReg *extension.Registry) evaluator.PrimitiveFunc {
	return func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		if err := checkLenEq(args, 1); err != nil {
			return nil, nil, err
		}
		name, err := wantString(args[0])
		if err != nil {
			return nil, nil, err
		}
		if extReg == nil {
			return nil, nil, langerr.Newf("no such extension: %s", string(name))
		}
		if err := extReg.Load(string(name), ev.GlobalEnv); err != nil {
			return nil, nil, err
		}
		return value.TheNil, nil, nil
	}
}

func primError(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return nil, nil, langerr.New(strings.Join(parts, " "))
}

func primExit(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	code := 0
	if len(args) == 1 {
		n, ok := value.AsBigInt(args[0])
		if ok {
			code = int(n.Int64())
		}
	}
	os.Exit(code)
	return value.TheNil, nil, nil
}

func primDisplay(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 1); err != nil {
		return nil, nil, err
	}
	fmt.Fprint(ev.Stdout, args[0].String())
	return value.TheNil, nil, nil
}

func primPrint(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprintln(ev.Stdout, strings.Join(parts, " "))
	return value.TheNil, nil, nil
}

func primNewline(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 0); err != nil {
		return nil, nil, err
	}
	fmt.Fprintln(ev.Stdout)
	return value.TheNil, nil, nil
}
