package evaluator

import (
	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/runtime"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// LiteralForm is a self-evaluating datum: a number, string, boolean, or
// quoted structure. It never produces a request, so its Eval is never
// resumed.
type LiteralForm struct {
	V value.Value
}

func (f *LiteralForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	return f.V, nil, nil
}

// VariableForm looks a name up in the current environment chain.
type VariableForm struct {
	Name string
}

func (f *VariableForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	v, ok := env.Lookup(f.Name)
	if !ok {
		return nil, nil, langerr.Newf("Unbound variable: %s", f.Name)
	}
	return v, nil, nil
}

// IfForm evaluates its predicate, then tail-evaluates whichever branch it
// selects (or returns the unspecified value if the predicate is false and
// there is no else branch).
type IfForm struct {
	Pred, Then, Else Form
}

func (f *IfForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if req == nil {
		return nil, newRequest(env, false, f.Pred), nil
	}
	if value.Truthy(req.Results[0]) {
		return nil, newRequest(req.Env, true, f.Then), nil
	}
	if f.Else == nil {
		return value.TheNil, nil, nil
	}
	return nil, newRequest(req.Env, true, f.Else), nil
}

// AssignmentForm implements set!: it requires the name to already be bound
// somewhere on the environment chain.
type AssignmentForm struct {
	Name      string
	ValueExpr Form
}

func (f *AssignmentForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if req == nil {
		return nil, newRequest(env, false, f.ValueExpr), nil
	}
	v := req.Results[0]
	if !req.Env.Assign(f.Name, v) {
		return nil, nil, langerr.Newf("Setting unbound variable: %s", f.Name)
	}
	return value.TheNil, nil, nil
}

// DefinitionForm implements define: it always binds in the current frame
// and returns Nil, so the REPL (which suppresses Nil results) prints
// nothing for a define.
type DefinitionForm struct {
	Name      string
	ValueExpr Form
}

func (f *DefinitionForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if req == nil {
		return nil, newRequest(env, false, f.ValueExpr), nil
	}
	v := req.Results[0]
	if proc, ok := v.(*CompoundProcedure); ok && proc.Name == "" {
		proc.Name = f.Name
	}
	req.Env.Define(f.Name, v)
	return value.TheNil, nil, nil
}

// LambdaForm produces a closure over the environment active when it is
// evaluated. It never needs a sub-request: the body is only analyzed, not
// evaluated, until the closure is applied.
type LambdaForm struct {
	Name   string
	Params []string
	Rest   string
	Body   []Form
}

func (f *LambdaForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	return &CompoundProcedure{Name: f.Name, Params: f.Params, Rest: f.Rest, Body: f.Body, Env: env}, nil, nil
}

// BeginForm evaluates a sequence of forms for effect, tail-calling the
// last one. Its Eval is never resumed: completion always happens through
// the trampoline's tail-position bypass.
type BeginForm struct {
	Body []Form
}

func (f *BeginForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if len(f.Body) == 0 {
		return value.TheNil, nil, nil
	}
	return nil, newRequest(env, true, f.Body...), nil
}

// AndForm evaluates its operands left to right, short-circuiting on the
// first falsy result and tail-calling the last operand if every earlier
// one was truthy.
type AndForm struct {
	Operands []Form
}

func (f *AndForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if req == nil {
		if len(f.Operands) == 0 {
			return value.True, nil, nil
		}
		return nil, f.requestFor(env, 0), nil
	}
	idx := req.Aux.(int)
	result := req.Results[0]
	if !value.Truthy(result) {
		return result, nil, nil
	}
	return nil, f.requestFor(req.Env, idx+1), nil
}

func (f *AndForm) requestFor(env *runtime.Environment, idx int) *EvalRequest {
	r := newRequest(env, idx == len(f.Operands)-1, f.Operands[idx])
	r.Aux = idx
	return r
}

// OrForm mirrors AndForm with the short-circuit condition inverted: it
// stops at the first truthy result.
type OrForm struct {
	Operands []Form
}

func (f *OrForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if req == nil {
		if len(f.Operands) == 0 {
			return value.False, nil, nil
		}
		return nil, f.requestFor(env, 0), nil
	}
	idx := req.Aux.(int)
	result := req.Results[0]
	if value.Truthy(result) {
		return result, nil, nil
	}
	return nil, f.requestFor(req.Env, idx+1), nil
}

func (f *OrForm) requestFor(env *runtime.Environment, idx int) *EvalRequest {
	r := newRequest(env, idx == len(f.Operands)-1, f.Operands[idx])
	r.Aux = idx
	return r
}

// ApplicationForm evaluates the operator and every operand (in unspecified
// but here left-to-right order), then applies the resulting procedure.
type ApplicationForm struct {
	Operator Form
	Operands []Form
}

func (f *ApplicationForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if req == nil {
		seq := make([]Form, 0, len(f.Operands)+1)
		seq = append(seq, f.Operator)
		seq = append(seq, f.Operands...)
		return nil, newRequest(env, false, seq...), nil
	}

	proc, ok := req.Results[0].(Procedure)
	if !ok {
		return nil, nil, langerr.Newf("The object %s is not applicable", req.Results[0].String())
	}
	args := req.Results[1:]
	return proc.Apply(args, ev)
}

// CallCcForm evaluates its single operand (expected to be a procedure of
// one argument), captures the evaluator's current work stack as a
// Continuation, and applies the procedure to it.
type CallCcForm struct {
	Receiver Form
}

func (f *CallCcForm) Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error) {
	if req == nil {
		return nil, newRequest(env, false, f.Receiver), nil
	}
	proc, ok := req.Results[0].(Procedure)
	if !ok {
		return nil, nil, langerr.Newf("The object %s is not applicable", req.Results[0].String())
	}
	cont := &Continuation{snapshot: ev.snapshotStack()}
	return proc.Apply([]value.Value{cont}, ev)
}
