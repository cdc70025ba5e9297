package tsi

import (
	"bytes"
	"strings"
	"testing"
)

func TestRegisterSimpleFunction(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	err = engine.RegisterFunction("add-numbers", func(a, b int64) int64 {
		return a + b
	})
	if err != nil {
		t.Fatalf("failed to register function: %v", err)
	}

	var buf bytes.Buffer
	engine.SetOutput(&buf)
	result, err := engine.Eval(`(display (add-numbers 40 2))`)
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution was not successful")
	}

	output := strings.TrimSpace(buf.String())
	if output != "42" {
		t.Errorf("expected output '42', got %q", output)
	}
}

func TestRegisterFunctionReturningError(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = engine.RegisterFunction("boom", func() (int64, error) {
		return 0, errFixture
	})
	if err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}
	if _, err := engine.Eval(`(boom)`); err == nil {
		t.Fatal("expected an error")
	}
}

func TestEvalStdlib(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := engine.Eval(`(length (list 1 2 3))`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if result.Value.String() != "3" {
		t.Errorf("got %q", result.Value.String())
	}
}

var errFixture = &fixtureError{}

type fixtureError struct{}

func (*fixtureError) Error() string { return "boom" }
