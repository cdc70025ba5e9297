// Package value implements the runtime value model: the tagged set of
// things a tsi program can produce, store, and pass around.
package value

// Value is satisfied by every runtime value: numbers, strings, booleans,
// symbols, pairs, nil, procedures, and continuations.
type Value interface {
	// Type returns a short, stable type tag used in error messages.
	Type() string

	// String returns the printed (display) form of the value.
	String() string

	// Equal reports structural equality: numbers by value, booleans and Nil
	// by identity, symbols by name, strings by contents, pairs recursively,
	// everything else by identity.
	Equal(other Value) bool
}

// Truthy reports whether v counts as true in a boolean context. Only the
// false singleton is false; every other value, including 0, "", and the
// empty list, is truthy.
func Truthy(v Value) bool {
	b, ok := v.(Boolean)
	return !ok || bool(b)
}
