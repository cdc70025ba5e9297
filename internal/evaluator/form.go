// Package evaluator is the trampolined evaluation engine: analyzed forms,
// the explicit work-stack driver that gives proper tail calls, procedure
// values, and call/cc via stack snapshotting. Form, EvalRequest,
// CompoundProcedure, PrimitiveProcedure and Continuation are mutually
// recursive by nature (a form analyzes to something that captures
// procedures, procedures apply by pushing more forms) so they live in one
// package as separate files rather than fighting Go's import graph.
package evaluator

import (
	"github.com/nfiedler-tsi/tsi-go/internal/runtime"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// Form is an analyzed expression. Eval is called in up to two phases for a
// single use:
//
//  1. First phase: req is nil. The form inspects env and either produces a
//     final Value directly (e.g. a literal or variable reference), or
//     builds an EvalRequest describing the sub-forms it needs evaluated
//     before it can finish.
//  2. Second phase: req is the EvalRequest this form produced in phase one,
//     now with every sub-form's result stored in req.Seq. The form uses
//     those results to produce its final Value (or, for application forms,
//     to produce another EvalRequest that walks into a called procedure).
//
// A form whose request has AsValue set never reaches phase two: the
// trampoline evaluates its last sub-form as a direct tail replacement
// instead of resuming the form (see trampoline.go), which is what gives
// tail calls constant stack space.
type Form interface {
	Eval(env *runtime.Environment, req *EvalRequest, ev *Evaluator) (value.Value, *EvalRequest, error)
}

// EvalRequest is one pending frame of the explicit work stack: a sequence
// of sub-forms to evaluate in env, the index of the most recently
// completed one, and the form that will be resumed once they're all done.
type EvalRequest struct {
	Seq     []Form
	Results []value.Value // Results[i] is the value of Seq[i] once evaluated
	Env     *runtime.Environment
	Idx     int // index of the last completed entry in Seq; starts at -1
	Caller  Form
	AsValue bool
	Aux     any // scratch slot forms use to carry extra state across phases
}

// newRequest builds a fresh request over seq. asValue marks the last entry
// of seq as a tail position: the trampoline evaluates it as a direct
// replacement of this request's frame instead of resuming Caller.
func newRequest(env *runtime.Environment, asValue bool, seq ...Form) *EvalRequest {
	return &EvalRequest{Seq: seq, Results: make([]value.Value, len(seq)), Env: env, Idx: -1, AsValue: asValue}
}

// NewRequest is newRequest exported for primitives (such as load) that need to hand the trampoline a fresh batch of sub-evaluations from
// outside this package.
func NewRequest(env *runtime.Environment, asValue bool, seq ...Form) *EvalRequest {
	return newRequest(env, asValue, seq...)
}

// Procedure is anything that can be applied to arguments: compound
// (lambda-produced) procedures, primitives, and captured continuations.
// Apply follows the same two-outcome contract as Form.Eval: either it
// finishes immediately with a Value, or it returns an EvalRequest that the
// trampoline must drive first.
type Procedure interface {
	value.Value
	Apply(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error)
}
