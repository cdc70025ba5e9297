package builtins

import (
	"io"
	"strings"
	"testing"

	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/parser"
)

func newEval(t *testing.T) *evaluator.Evaluator {
	t.Helper()
	ev := evaluator.New(io.Discard, strings.NewReader(""))
	Default(nil).InstallInto(ev.GlobalEnv)
	return ev
}

func run(t *testing.T, src string) string {
	t.Helper()
	ev := newEval(t)
	nodes, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	forms, err := evaluator.AnalyzeMany(nodes)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	v, err := ev.EvalForms(forms, ev.GlobalEnv)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return v.String()
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	ev := newEval(t)
	nodes, err := parser.ParseProgram(src)
	if err != nil {
		return err
	}
	forms, err := evaluator.AnalyzeMany(nodes)
	if err != nil {
		return err
	}
	_, err = ev.EvalForms(forms, ev.GlobalEnv)
	return err
}

func TestArithmetic(t *testing.T) {
	cases := map[string]string{
		`(+ 1 2 3)`:    "6",
		`(- 10 1 2)`:   "7",
		`(- 5)`:        "-5",
		`(* 2 3 4)`:    "24",
		`(/ 1 2)`:      "0.5",
		`(modulo 7 3)`: "1",
		`(modulo -7 3)`: "2",
		`(min 3 1 2)`:  "1",
		`(max 3 1 2)`:  "3",
	}
	for src, want := range cases {
		if got := run(t, src); got != want {
			t.Errorf("%s = %q, want %q", src, got, want)
		}
	}
}

func TestComparisons(t *testing.T) {
	if run(t, `(< 1 2 3)`) != "#t" {
		t.Error("expected #t")
	}
	if run(t, `(< 1 3 2)`) != "#f" {
		t.Error("expected #f")
	}
	if run(t, `(eq? 'a 'a)`) != "#t" {
		t.Error("symbols with the same name should be eq?")
	}
	if run(t, `(not #f)`) != "#t" {
		t.Error("expected #t")
	}
}

func TestPairsAndLists(t *testing.T) {
	if got := run(t, `(car (cons 1 2))`); got != "1" {
		t.Errorf("got %q", got)
	}
	if got := run(t, `(cdr (cons 1 2))`); got != "2" {
		t.Errorf("got %q", got)
	}
	if got := run(t, `(list 1 2 3)`); got != "(1 2 3)" {
		t.Errorf("got %q", got)
	}
	if got := run(t, `(cadr (list 1 2 3))`); got != "2" {
		t.Errorf("got %q", got)
	}
	if got := run(t, `(caddr (list 1 2 3))`); got != "3" {
		t.Errorf("got %q", got)
	}
	if got := run(t, `
		(define p (cons 1 2))
		(set-car! p 10)
		(car p)
	`); got != "10" {
		t.Errorf("got %q", got)
	}
}

func TestPredicates(t *testing.T) {
	cases := map[string]string{
		`(null? '())`:     "#t",
		`(pair? '(1))`:    "#t",
		`(symbol? 'a)`:    "#t",
		`(string? "hi")`:  "#t",
		`(number? 3)`:     "#t",
		`(integer? 3)`:    "#t",
		`(real? 3.5)`:     "#t",
		`(boolean? #t)`:   "#t",
	}
	for src, want := range cases {
		if got := run(t, src); got != want {
			t.Errorf("%s = %q, want %q", src, got, want)
		}
	}
}

func TestApply(t *testing.T) {
	got := run(t, `(apply + (list 1 2 3))`)
	if got != "6" {
		t.Errorf("got %q", got)
	}
}

func TestErrorPrimitive(t *testing.T) {
	err := runErr(t, `(error "boom" 42)`)
	if err == nil || !strings.Contains(err.Error(), "boom 42") {
		t.Fatalf("want error mentioning the message, got %v", err)
	}
	if strings.Contains(err.Error(), "-- error") {
		t.Fatalf("error primitive should not append its own name, got %v", err)
	}
}

func TestLoadExtMissing(t *testing.T) {
	err := runErr(t, `(load-ext "turtle")`)
	if err == nil || !strings.Contains(err.Error(), "no such extension") {
		t.Fatalf("want no-such-extension error, got %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	got := run(t, `(json->value (value->json (list (cons "a" 1) (cons "b" (list 1 2 3)))))`)
	if !strings.Contains(got, "a . 1") || !strings.Contains(got, "1 2 3") {
		t.Errorf("got %q", got)
	}

	got2 := run(t, `(value->json (list (cons "a" 1) (cons "b" "x")))`)
	if !strings.Contains(got2, `"a":1`) || !strings.Contains(got2, `"b":"x"`) {
		t.Errorf("got %q", got2)
	}
}

func TestStringCase(t *testing.T) {
	if got := run(t, `(string-upcase "straße")`); got != "STRASSE" {
		t.Errorf("got %q", got)
	}
	if got := run(t, `(string-downcase "HELLO")`); got != "hello" {
		t.Errorf("got %q", got)
	}
}
