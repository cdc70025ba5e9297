package evaluator

import (
	"bufio"
	"errors"
	"io"

	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/parser"
	"github.com/nfiedler-tsi/tsi-go/internal/runtime"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// Evaluator drives the work stack. It carries no evaluation state between
// top-level calls to Eval/EvalForms beyond the global environment: each
// call starts from a fresh stack, so a fault in one top-level form can't
// leave stray frames behind for the next.
type Evaluator struct {
	GlobalEnv *runtime.Environment
	Stdout    io.Writer
	Stdin     io.Reader

	stack []any // Form or *EvalRequest
	env   *runtime.Environment

	stdinReader *bufio.Reader
}

// New creates an Evaluator with a fresh global environment.
func New(stdout io.Writer, stdin io.Reader) *Evaluator {
	return &Evaluator{
		GlobalEnv: runtime.NewGlobal(),
		Stdout:    stdout,
		Stdin:     stdin,
	}
}

// continuationSignal unwinds the trampoline's call chain back to the top
// of Run when a captured continuation is invoked: it is returned as the
// error half of a Form.Eval/Procedure.Apply result and caught only here,
// never surfaced as a language error.
type continuationSignal struct {
	stack []any
	value value.Value
}

func (c *continuationSignal) Error() string { return "continuation invoked outside its extent" }

// EvalForms runs a sequence of already-analyzed top-level forms in order,
// each in env, and returns the value of the last one: both the REPL and
// LoadSource reduce to this, evaluating each form in turn and discarding
// all but the final result. The forms run as the body of one begin, so
// every form starts from env rather than from whatever frame the previous
// form's last call left current.
func (ev *Evaluator) EvalForms(forms []Form, env *runtime.Environment) (value.Value, error) {
	ev.stack = []any{&BeginForm{Body: forms}}
	ev.env = env
	return ev.run()
}

// pushRequest integrates a freshly produced request into the live stack,
// tagging it with the form or procedure application that produced it and
// switching the current environment to the request's own.
func (ev *Evaluator) pushRequest(req *EvalRequest, caller Form) {
	req.Caller = caller
	ev.env = req.Env
	ev.stack = append(ev.stack, req)
}

func (ev *Evaluator) run() (value.Value, error) {
	var ret value.Value = value.TheNil

	for len(ev.stack) > 0 {
		top := ev.stack[len(ev.stack)-1]
		ev.stack = ev.stack[:len(ev.stack)-1]

		switch e := top.(type) {
		case *EvalRequest:
			n := len(e.Seq)
			if e.Idx != -1 {
				e.Results[e.Idx] = ret
			}
			if e.Idx < n-2 || (e.Idx == n-2 && !e.AsValue) {
				e.Idx++
				ev.env = e.Env
				ev.stack = append(ev.stack, e, e.Seq[e.Idx])
				continue
			}

			var caller Form
			var val value.Value
			var req *EvalRequest
			var err error
			if e.Idx == n-2 && e.AsValue {
				caller = e.Seq[n-1]
				val, req, err = caller.Eval(e.Env, nil, ev)
			} else {
				caller = e.Caller
				val, req, err = caller.Eval(e.Env, e, ev)
			}
			if err != nil {
				if ev.catchContinuation(err, &ret) {
					continue
				}
				return nil, err
			}
			if req != nil {
				ev.pushRequest(req, caller)
			} else {
				ret = val
			}

		case Form:
			val, req, err := e.Eval(ev.env, nil, ev)
			if err != nil {
				if ev.catchContinuation(err, &ret) {
					continue
				}
				return nil, err
			}
			if req != nil {
				ev.pushRequest(req, e)
			} else {
				ret = val
			}

		default:
			return nil, langerr.Newf("internal: unexpected stack item %T", top)
		}
	}

	return ret, nil
}

// LoadSource parses and analyzes source in its entirety and evaluates the
// resulting forms in the global environment, returning the value of the
// last one. Used by the driver for whole sources (file arguments, inline
// expressions and the bootstrap library); the load primitive parses its
// file itself and hands the trampoline a request instead, and REPL input
// goes through parser.Parse/Analyze one expression at a time.
func (ev *Evaluator) LoadSource(source string) (value.Value, error) {
	nodes, err := parser.ParseProgram(source)
	if err != nil {
		return nil, err
	}
	forms, err := AnalyzeMany(nodes)
	if err != nil {
		return nil, err
	}
	return ev.EvalForms(forms, ev.GlobalEnv)
}

// ReadDatum reads one expression from Stdin and returns it as data (an
// interned symbol, a number, a string, or a chain of Pairs), the same
// conversion quote applies to a parsed expression. It accumulates lines
// until a complete expression closes, mirroring the REPL's own handling
// of ErrIncomplete.
func (ev *Evaluator) ReadDatum() (value.Value, error) {
	if ev.stdinReader == nil {
		ev.stdinReader = bufio.NewReader(ev.Stdin)
	}
	var buf []byte
	for {
		line, err := ev.stdinReader.ReadString('\n')
		buf = append(buf, line...)
		if len(buf) > 0 {
			node, perr := parser.Parse(string(buf))
			if perr == nil {
				return Datum(node), nil
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

// catchContinuation checks whether err is a continuationSignal, and if so
// restores the evaluator's stack to a fresh copy of the captured one and
// reports the invoked value through ret. The return tells the caller
// whether to keep looping in run() rather than propagate err upward.
func (ev *Evaluator) catchContinuation(err error, ret *value.Value) bool {
	sig, ok := err.(*continuationSignal)
	if !ok {
		return false
	}
	ev.stack = cloneStack(sig.stack)
	*ret = sig.value
	return true
}

// snapshotStack deep-copies the current work stack for call/cc: EvalRequest
// frames are cloned (including their Seq/Results slices) so later mutation
// of the live stack never leaks into a captured continuation, while the
// analyzed forms, values and environments they reference are shared as-is,
// not copied.
func (ev *Evaluator) snapshotStack() []any {
	return cloneStack(ev.stack)
}

func cloneStack(stack []any) []any {
	out := make([]any, len(stack))
	for i, item := range stack {
		if req, ok := item.(*EvalRequest); ok {
			clone := *req
			clone.Seq = append([]Form(nil), req.Seq...)
			clone.Results = append([]value.Value(nil), req.Results...)
			out[i] = &clone
		} else {
			out[i] = item
		}
	}
	return out
}
