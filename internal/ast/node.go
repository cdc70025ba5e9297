// Package ast defines the nested atom tree produced by the parser and
// consumed by the analyzer. Atoms are raw tokens (still strings);
// composite nodes are ordered tuples of sub-nodes.
package ast

// Node is either an Atom or a List.
type Node interface {
	node()
	String() string
}

// Atom is a single raw token: an integer/real/string literal or a symbol
// reference, not yet classified — classification happens in the analyzer.
type Atom string

func (Atom) node() {}

func (a Atom) String() string { return string(a) }

// List is an ordered tuple of sub-nodes, e.g. the parse of "(if a b c)".
type List []Node

func (List) node() {}

func (l List) String() string {
	s := "("
	for i, n := range l {
		if i > 0 {
			s += " "
		}
		s += n.String()
	}
	return s + ")"
}

// Head returns the first element of l as an Atom, if l is non-empty and its
// first element is an Atom. Used by the analyzer to dispatch on the
// reserved-keyword / application distinction.
func (l List) Head() (Atom, bool) {
	if len(l) == 0 {
		return "", false
	}
	a, ok := l[0].(Atom)
	return a, ok
}
