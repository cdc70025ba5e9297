package evaluator

import (
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/nfiedler-tsi/tsi-go/internal/parser"
	"github.com/nfiedler-tsi/tsi-go/internal/runtime"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// installArith defines just enough arithmetic (+, -, *, <, =) to exercise
// the trampoline without pulling in the real builtins package, which
// itself depends on this one.
func installArith(env *runtime.Environment) {
	env.Define("+", &PrimitiveProcedure{Name: "+", Fn: func(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error) {
		acc := big.NewInt(0)
		for _, a := range args {
			n, ok := value.AsBigInt(a)
			if !ok {
				return nil, nil, langerrNotANumber(a)
			}
			acc.Add(acc, n)
		}
		return value.NewIntegerFromBig(acc), nil, nil
	}})

	env.Define("*", &PrimitiveProcedure{Name: "*", Fn: func(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error) {
		acc := big.NewInt(1)
		for _, a := range args {
			n, ok := value.AsBigInt(a)
			if !ok {
				return nil, nil, langerrNotANumber(a)
			}
			acc.Mul(acc, n)
		}
		return value.NewIntegerFromBig(acc), nil, nil
	}})

	env.Define("-", &PrimitiveProcedure{Name: "-", Fn: func(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error) {
		if len(args) == 0 {
			return nil, nil, langerrNotANumber(nil)
		}
		first, ok := value.AsBigInt(args[0])
		if !ok {
			return nil, nil, langerrNotANumber(args[0])
		}
		if len(args) == 1 {
			return value.NewIntegerFromBig(new(big.Int).Neg(first)), nil, nil
		}
		acc := new(big.Int).Set(first)
		for _, a := range args[1:] {
			n, ok := value.AsBigInt(a)
			if !ok {
				return nil, nil, langerrNotANumber(a)
			}
			acc.Sub(acc, n)
		}
		return value.NewIntegerFromBig(acc), nil, nil
	}})

	env.Define("<", &PrimitiveProcedure{Name: "<", Fn: func(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error) {
		for i := 1; i < len(args); i++ {
			a, _ := value.AsBigInt(args[i-1])
			b, _ := value.AsBigInt(args[i])
			if a.Cmp(b) >= 0 {
				return value.False, nil, nil
			}
		}
		return value.True, nil, nil
	}})

	env.Define("=", &PrimitiveProcedure{Name: "=", Fn: func(args []value.Value, ev *Evaluator) (value.Value, *EvalRequest, error) {
		for i := 1; i < len(args); i++ {
			if !args[0].Equal(args[i]) {
				return value.False, nil, nil
			}
		}
		return value.True, nil, nil
	}})
}

func langerrNotANumber(v value.Value) error {
	return &notANumberError{v}
}

type notANumberError struct{ v value.Value }

func (e *notANumberError) Error() string {
	if e.v == nil {
		return "not a number: (missing argument)"
	}
	return "not a number: " + e.v.String()
}

func evalSrc(t *testing.T, src string) value.Value {
	t.Helper()
	ev := New(io.Discard, strings.NewReader(""))
	installArith(ev.GlobalEnv)

	nodes, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	forms, err := AnalyzeMany(nodes)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	v, err := ev.EvalForms(forms, ev.GlobalEnv)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return v
}

func evalErr(t *testing.T, src string) error {
	t.Helper()
	ev := New(io.Discard, strings.NewReader(""))
	installArith(ev.GlobalEnv)

	nodes, err := parser.ParseProgram(src)
	if err != nil {
		return err
	}
	forms, err := AnalyzeMany(nodes)
	if err != nil {
		return err
	}
	_, err = ev.EvalForms(forms, ev.GlobalEnv)
	return err
}

func TestLiteralsSelfEvaluate(t *testing.T) {
	cases := map[string]string{
		`42`:      "42",
		`3.5`:     "3.5",
		`"hi"`:    "hi",
		`#t`:      "#t",
		`#f`:      "#f",
		`'sym`:    "sym",
		`'(1 2)`:  "(1 2)",
	}
	for src, want := range cases {
		got := evalSrc(t, src)
		if got.String() != want {
			t.Errorf("eval(%q) = %q, want %q", src, got.String(), want)
		}
	}
}

func TestDefineAndVariableLookup(t *testing.T) {
	got := evalSrc(t, `(define x 10) (+ x 5)`)
	if got.String() != "15" {
		t.Errorf("got %q, want 15", got.String())
	}
}

func TestUnboundVariable(t *testing.T) {
	err := evalErr(t, `nope`)
	if err == nil || !strings.Contains(err.Error(), "Unbound variable") {
		t.Fatalf("want unbound variable error, got %v", err)
	}
}

func TestIfBranches(t *testing.T) {
	if got := evalSrc(t, `(if (< 1 2) "yes" "no")`); got.String() != "yes" {
		t.Errorf("got %q", got.String())
	}
	if got := evalSrc(t, `(if (< 2 1) "yes" "no")`); got.String() != "no" {
		t.Errorf("got %q", got.String())
	}
	if got := evalSrc(t, `(if #f 1)`); got != value.TheNil {
		t.Errorf("missing else branch should produce the unspecified value, got %v", got)
	}
}

func TestAndOrShortCircuit(t *testing.T) {
	if got := evalSrc(t, `(and 1 2 3)`); got.String() != "3" {
		t.Errorf("got %q", got.String())
	}
	if got := evalSrc(t, `(and 1 #f 3)`); got != value.False {
		t.Errorf("got %v", got)
	}
	if got := evalSrc(t, `(or #f #f 7)`); got.String() != "7" {
		t.Errorf("got %q", got.String())
	}
	if got := evalSrc(t, `(or #f #f)`); got != value.False {
		t.Errorf("got %v", got)
	}
}

func TestLambdaAndClosures(t *testing.T) {
	got := evalSrc(t, `
		(define (make-adder n) (lambda (x) (+ x n)))
		(define add5 (make-adder 5))
		(add5 10)
	`)
	if got.String() != "15" {
		t.Errorf("got %q", got.String())
	}
}

func TestLetAndNamedLet(t *testing.T) {
	if got := evalSrc(t, `(let ((a 1) (b 2)) (+ a b))`); got.String() != "3" {
		t.Errorf("got %q", got.String())
	}

	got := evalSrc(t, `
		(let loop ((i 0) (acc 0))
		  (if (< i 100000)
		      (loop (+ i 1) (+ acc i))
		      acc))
	`)
	if got.String() != "4999950000" {
		t.Errorf("deep tail recursion via named let gave %q, want proper TCO result", got.String())
	}
}

func TestCondLowering(t *testing.T) {
	got := evalSrc(t, `
		(define (classify n)
		  (cond ((< n 0) "negative")
		        ((= n 0) "zero")
		        (else "positive")))
		(classify -1)
	`)
	if got.String() != "negative" {
		t.Errorf("got %q", got.String())
	}

	got2 := evalSrc(t, `(cond ((< 3 3) 'a) ((< 3 4) 'b) (else 'c))`)
	if got2.String() != "b" {
		t.Errorf("got %q", got2.String())
	}

	got3 := evalSrc(t, `(cond (5))`)
	if got3.String() != "#t" {
		t.Errorf("no-body clause should yield #t when its test is true, got %q", got3.String())
	}
}

func TestDeepRecursionDoesNotOverflowGoStack(t *testing.T) {
	got := evalSrc(t, `
		(define (count-to n acc)
		  (if (< n acc) acc (count-to n (+ acc 1))))
		(count-to 200000 0)
	`)
	if got.String() != "200001" {
		t.Errorf("got %q", got.String())
	}
}

func TestSetBang(t *testing.T) {
	got := evalSrc(t, `
		(define x 1)
		(set! x (+ x 1))
		x
	`)
	if got.String() != "2" {
		t.Errorf("got %q", got.String())
	}
}

func TestSetBangUnbound(t *testing.T) {
	err := evalErr(t, `(set! nope 1)`)
	if err == nil || !strings.Contains(err.Error(), "Setting unbound variable") {
		t.Fatalf("want setting-unbound error, got %v", err)
	}
}

func TestCallCcEscape(t *testing.T) {
	got := evalSrc(t, `
		(+ 1 (call/cc (lambda (k) (+ 2 (k 10)))))
	`)
	if got.String() != "11" {
		t.Errorf("call/cc should discard the pending (+ 2 ...) and escape with 10, got %q", got.String())
	}
}

func TestCallCcGenerator(t *testing.T) {
	got := evalSrc(t, `
		(define saved-k #f)
		(define (gen)
		  (+ 1 (call/cc (lambda (k) (set! saved-k k) 0))))
		(define first (gen))
		first
	`)
	if got.String() != "1" {
		t.Errorf("got %q", got.String())
	}
}

func TestApplicationOfNonProcedure(t *testing.T) {
	err := evalErr(t, `(1 2 3)`)
	if err == nil || !strings.Contains(err.Error(), "not applicable") {
		t.Fatalf("want not-applicable error, got %v", err)
	}
}
