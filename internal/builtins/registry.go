// Package builtins implements the primitive procedures every fresh global
// environment starts with: arithmetic, comparisons, pairs and lists, type
// predicates, and the system procedures (apply, load, display, ...), plus
// a few extras beyond a bare Scheme core (JSON conversion, Unicode-aware
// case folding).
package builtins

import (
	"github.com/maruel/natural"

	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/extension"
	"github.com/nfiedler-tsi/tsi-go/internal/runtime"
)

// Category groups related primitives for the primitives CLI command and
// for documentation; it plays no role in name resolution.
type Category string

const (
	CategoryArithmetic Category = "arithmetic"
	CategoryComparison Category = "comparison"
	CategoryPair       Category = "pair"
	CategoryPredicate  Category = "predicate"
	CategorySystem     Category = "system"
	CategoryText       Category = "text"
)

// Entry is one registered primitive procedure.
type Entry struct {
	Name        string
	Proc        *evaluator.PrimitiveProcedure
	Category    Category
	Description string
}

// Registry collects the primitive table built up by Default and installs
// it into a fresh global environment. Lookup is case-sensitive: Scheme
// symbols are case-sensitive, so folding names to lowercase would make
// "Set!" and "set!" collide.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

func (r *Registry) register(name string, fn evaluator.PrimitiveFunc, raw bool, category Category, description string) {
	r.entries[name] = &Entry{
		Name:        name,
		Proc:        &evaluator.PrimitiveProcedure{Name: name, Fn: fn, Raw: raw},
		Category:    category,
		Description: description,
	}
}

// InstallInto binds every registered primitive in env.
func (r *Registry) InstallInto(env *runtime.Environment) {
	for name, e := range r.entries {
		env.Define(name, e.Proc)
	}
}

// Get looks up a single entry by exact name.
func (r *Registry) Get(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns every registered primitive name in natural sort order:
// runs of digits compare by numeric value, everything else byte by byte.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	natural.Sort(names)
	return names
}

// Count returns the number of registered primitives.
func (r *Registry) Count() int { return len(r.entries) }

// Default builds the full primitive table a fresh global environment is
// seeded with. extReg wires load-ext to a host's registered extensions;
// pass nil if the embedding program has none to offer.
func Default(extReg *extension.Registry) *Registry {
	r := NewRegistry()
	registerArithmetic(r)
	registerComparisons(r)
	registerPairs(r)
	registerPredicates(r)
	registerSystem(r, extReg)
	registerJSON(r)
	registerStrings(r)
	return r
}
