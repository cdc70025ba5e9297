package evaluator

import (
	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/runtime"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// CompoundProcedure is a closure: the parameter list and body captured
// from a lambda expression, plus the environment it was created in.
type CompoundProcedure struct {
	Name   string // empty for anonymous lambdas; set by (define (f ...) ...) sugar
	Params []string
	Rest   string // "" if the lambda has no rest parameter
	Body   []Form
	Env    *runtime.Environment
}

func (p *CompoundProcedure) Type() string { return "PROCEDURE" }

func (p *CompoundProcedure) String() string {
	if p.Name != "" {
		return "#[compound-procedure " + p.Name + "]"
	}
	return "#[compound-procedure]"
}

func (p *CompoundProcedure) Equal(other value.Value) bool {
	o, ok := other.(*CompoundProcedure)
	return ok && p == o
}

// Apply binds args to the parameter list in a new frame extending the
// closure's captured environment, then evaluates the body with the last
// form in tail position.
func (p *CompoundProcedure) Apply(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if p.Rest == "" && len(args) != len(p.Params) {
		return nil, nil, langerr.Newf("the procedure has been called with %d arguments; it requires exactly %d", len(args), len(p.Params))
	}
	if p.Rest != "" && len(args) < len(p.Params) {
		return nil, nil, langerr.Newf("the procedure has been called with %d arguments; it requires at least %d", len(args), len(p.Params))
	}

	callEnv := p.Env.NewChild()
	for i, name := range p.Params {
		callEnv.Define(name, args[i])
	}
	if p.Rest != "" {
		callEnv.Define(p.Rest, value.MakeList(args[len(p.Params):]...))
	}

	if len(p.Body) == 0 {
		return value.TheNil, nil, nil
	}
	return nil, newRequest(callEnv, true, p.Body...), nil
}

// PrimitiveFunc is the shape every built-in procedure implements. It
// follows the same two-outcome contract as Form.Eval and Procedure.Apply:
// most primitives return a Value directly, but a few (apply, load) need
// the trampoline to drive further evaluation and return an EvalRequest
// instead.
type PrimitiveFunc func(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error)

// PrimitiveProcedure wraps a host-implemented procedure. Raw, when true,
// suppresses the "-- name" suffix errors.WithPrimitive would otherwise
// append, for primitives (like error) that already produce their own
// fully-formed message.
type PrimitiveProcedure struct {
	Name string
	Fn   PrimitiveFunc
	Raw  bool
}

func (p *PrimitiveProcedure) Type() string { return "PROCEDURE" }

func (p *PrimitiveProcedure) String() string { return "#[compiled-procedure " + p.Name + "]" }

func (p *PrimitiveProcedure) Equal(other value.Value) bool {
	o, ok := other.(*PrimitiveProcedure)
	return ok && p == o
}

func (p *PrimitiveProcedure) Apply(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error) {
	val, req, err := p.Fn(args, ev)
	if err != nil {
		// A continuation invoked from within this primitive (e.g. apply
		// calling a captured continuation) must unwind untouched: it is
		// not a language error and must never be wrapped or reported.
		if _, ok := err.(*continuationSignal); ok {
			return nil, nil, err
		}
		if p.Raw {
			return nil, nil, err
		}
		return nil, nil, langerr.Wrap(err, p.Name)
	}
	return val, req, nil
}

// Continuation is a reified escape procedure captured by call/cc: applying
// it unwinds the evaluator back to the point of capture and resumes as if
// the call/cc expression had just returned the supplied value. It may be
// invoked any number of times, including after the dynamic extent that
// captured it has returned.
type Continuation struct {
	snapshot []any
}

func (c *Continuation) Type() string { return "CONTINUATION" }

func (c *Continuation) String() string { return "#[continuation]" }

func (c *Continuation) Equal(other value.Value) bool {
	o, ok := other.(*Continuation)
	return ok && c == o
}

// Apply accepts exactly one argument, the value to resume call/cc's
// caller with. It never returns normally: it always signals the
// trampoline's outer loop to restore the captured stack.
func (c *Continuation) Apply(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if len(args) != 1 {
		return nil, nil, langerr.Newf("a continuation accepts exactly one value, got %d", len(args))
	}
	return nil, nil, &continuationSignal{stack: c.snapshot, value: args[0]}
}
