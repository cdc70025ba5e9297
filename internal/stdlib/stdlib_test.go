package stdlib_test

import (
	"io"
	"strings"
	"testing"

	"github.com/nfiedler-tsi/tsi-go/internal/builtins"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/stdlib"
)

func run(t *testing.T, src string) string {
	t.Helper()
	ev := evaluator.New(io.Discard, strings.NewReader(""))
	builtins.Default(nil).InstallInto(ev.GlobalEnv)
	if _, err := ev.LoadSource(stdlib.Source); err != nil {
		t.Fatalf("loading stdlib: %v", err)
	}
	v, err := ev.LoadSource(src)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return v.String()
}

func TestListProcedures(t *testing.T) {
	cases := map[string]string{
		`(length (list 1 2 3))`:         "3",
		`(append (list 1 2) (list 3 4))`: "(1 2 3 4)",
		`(reverse (list 1 2 3))`:        "(3 2 1)",
		`(list-ref (list 10 20 30) 1)`:  "20",
		`(map (lambda (x) (* x x)) (list 1 2 3))`: "(1 4 9)",
		`(filter (lambda (x) (< x 3)) (list 1 2 3 4))`: "(1 2)",
	}
	for src, want := range cases {
		if got := run(t, src); got != want {
			t.Errorf("%s = %q, want %q", src, got, want)
		}
	}
}

func TestForEachAccumulatesSideEffects(t *testing.T) {
	got := run(t, `
		(define total 0)
		(for-each (lambda (x) (set! total (+ total x))) (list 1 2 3 4))
		total
	`)
	if got != "10" {
		t.Errorf("got %q", got)
	}
}

func TestGeneratorYieldsThenFallsOff(t *testing.T) {
	got := run(t, `
		(define g (gen (list 1 2 3)))
		(list (g) (g) (g) (g) (g))
	`)
	want := "(1 2 3 you-fell-off-the-end you-fell-off-the-end)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFourQueens(t *testing.T) {
	got := run(t, `(queens 4)`)
	want := "((3 1 4 2) (2 4 1 3))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
