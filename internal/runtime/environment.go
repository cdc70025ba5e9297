// Package runtime implements the lexical environment model: a chain of
// frames, each a symbol-to-value mapping with an optional parent. Every
// non-global frame has exactly one parent; the global frame is the unique
// root.
package runtime

import (
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// Environment is one frame of the lexical scope chain.
type Environment struct {
	vars   map[string]value.Value
	parent *Environment
}

// NewGlobal creates a root environment with no parent.
func NewGlobal() *Environment {
	return &Environment{vars: make(map[string]value.Value)}
}

// NewChild creates a new frame enclosed by this one. Closures capture their
// defining environment and a compound-procedure call extends it exactly
// this way: no copying, just a new frame linked to the old one.
func (e *Environment) NewChild() *Environment {
	return &Environment{vars: make(map[string]value.Value), parent: e}
}

// Lookup walks the frame chain outward looking for name. ok is false if no
// frame in the chain binds it.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign implements set!: it requires name to already exist somewhere on
// the chain, and rebinds it in the frame where it was found. ok is false
// if name is unbound anywhere on the chain.
func (e *Environment) Assign(name string, v value.Value) bool {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			f.vars[name] = v
			return true
		}
	}
	return false
}

// Define always binds name in the current frame, shadowing any binding of
// the same name in an outer frame.
func (e *Environment) Define(name string, v value.Value) {
	e.vars[name] = v
}

// DefineAll binds every (name, value) pair in the current frame. Used to
// bulk-install primitive tables and extension-registered procedures.
func (e *Environment) DefineAll(bindings map[string]value.Value) {
	for name, v := range bindings {
		e.vars[name] = v
	}
}

// Parent returns the enclosing frame, or nil for the global frame.
func (e *Environment) Parent() *Environment {
	return e.parent
}
