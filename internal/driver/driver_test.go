package driver

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func newDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := New(DefaultConfig(), io.Discard, strings.NewReader(""), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestEval(t *testing.T) {
	d := newDriver(t)
	v, err := d.Eval(`(+ 1 2 3)`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.String() != "6" {
		t.Errorf("got %q", v.String())
	}
}

func TestEvalSeesStdlib(t *testing.T) {
	d := newDriver(t)
	v, err := d.Eval(`(length (list 1 2 3))`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.String() != "3" {
		t.Errorf("got %q", v.String())
	}
}

func TestREPLEchoesResultsAndRecoversFromErrors(t *testing.T) {
	d := newDriver(t)
	in := strings.NewReader("(define x 10)\n(+ x 1)\n(car '())\n(+ x 2)\n")
	var out bytes.Buffer
	d.REPL(in, &out)

	got := out.String()
	if !strings.Contains(got, "11") {
		t.Errorf("expected 11 in output, got %q", got)
	}
	if !strings.Contains(got, "Error:") {
		t.Errorf("expected an Error: line for (car '()), got %q", got)
	}
	if !strings.Contains(got, "12") {
		t.Errorf("expected 12 in output after recovering from the error, got %q", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	d := newDriver(t)
	if _, err := d.LoadFile("/no/such/file.scm"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestDefaultConfigPrompt(t *testing.T) {
	if DefaultConfig().Prompt != ">> " {
		t.Errorf("got %q", DefaultConfig().Prompt)
	}
}
