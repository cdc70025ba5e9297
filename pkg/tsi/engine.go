// Package tsi is the embeddable form of the interpreter: a host Go
// program builds an Engine, optionally registers its own Go functions
// and extensions into it, and evaluates Scheme source against it.
package tsi

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/nfiedler-tsi/tsi-go/internal/driver"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/extension"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// Engine is one interpreter instance embedded in a host program.
type Engine struct {
	d *driver.Driver
}

// Option configures an Engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	extensions []extension.Extension
	config     driver.Config
}

// WithExtension registers an extension (see internal/extension) so the
// engine's (load-ext "name") resolves to it.
func WithExtension(ext extension.Extension) Option {
	return func(c *engineConfig) { c.extensions = append(c.extensions, ext) }
}

// WithPrompt overrides the REPL prompt string used by Engine.REPL.
func WithPrompt(prompt string) Option {
	return func(c *engineConfig) { c.config.Prompt = prompt }
}

// New builds an Engine, applying every Option in order. Its global
// environment is seeded with the full primitive table and the bootstrap
// library before any Option or registered function runs against it.
func New(opts ...Option) (*Engine, error) {
	cfg := engineConfig{config: driver.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}

	extReg := extension.NewRegistry()
	for _, ext := range cfg.extensions {
		extReg.Register(ext)
	}

	d, err := driver.New(cfg.config, io.Discard, strings.NewReader(""), extReg)
	if err != nil {
		return nil, err
	}
	return &Engine{d: d}, nil
}

// SetOutput redirects (display ...)/(print ...)/(newline) to w.
func (e *Engine) SetOutput(w io.Writer) {
	e.d.Evaluator().Stdout = w
}

// SetInput redirects (read) to r.
func (e *Engine) SetInput(r io.Reader) {
	e.d.Evaluator().Stdin = r
}

// RegisterFunction exposes a Go function to Scheme code under name. fn
// must be a func value; its parameters and return value are limited to
// the types marshalToGo/marshalToScheme support (integers, reals,
// strings, booleans) plus an optional single error as the final return
// value, which surfaces to the script as a raised error rather than a
// return value.
func (e *Engine) RegisterFunction(name string, fn any) error {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return fmt.Errorf("RegisterFunction(%q): not a function", name)
	}
	rt := rv.Type()

	returnsErr := rt.NumOut() > 0 && rt.Out(rt.NumOut()-1) == reflect.TypeOf((*error)(nil)).Elem()

	prim := &evaluator.PrimitiveProcedure{
		Name: name,
		Fn: func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
			if len(args) != rt.NumIn() {
				return nil, nil, fmt.Errorf("%s: expected %d argument(s), got %d", name, rt.NumIn(), len(args))
			}
			in := make([]reflect.Value, rt.NumIn())
			for i, a := range args {
				gv, err := marshalToGo(a, rt.In(i))
				if err != nil {
					return nil, nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
				}
				in[i] = gv
			}

			out := rv.Call(in)
			if returnsErr {
				if errVal := out[len(out)-1]; !errVal.IsNil() {
					return nil, nil, errVal.Interface().(error)
				}
				out = out[:len(out)-1]
			}
			if len(out) == 0 {
				return value.TheNil, nil, nil
			}
			result, err := marshalToScheme(out[0])
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			return result, nil, nil
		},
	}
	e.d.Evaluator().GlobalEnv.Define(name, prim)
	return nil
}

// Result is the outcome of one Engine.Eval call.
type Result struct {
	Value   value.Value
	Success bool
}

// Eval parses and evaluates source in its entirety.
func (e *Engine) Eval(source string) (Result, error) {
	v, err := e.d.Eval(source)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v, Success: true}, nil
}

// REPL runs the interactive read-eval-print loop against in/out.
func (e *Engine) REPL(in io.Reader, out io.Writer) {
	e.d.REPL(in, out)
}
