// Package extension implements the load-ext hook: a way for a host
// program embedding the interpreter (or a script calling load-ext) to
// bring in a set of primitives that aren't part of the core language,
// without the core needing to know about them at compile time.
//
// The source interpreter did this with CPython's import machinery
// (__import__ plus a tsi_ext_flag marker attribute). Go has no dynamic
// module loading, so the Go realization is a compile-time registry: a
// host process registers its Extension implementations up front, and
// load-ext resolves a name against that registry instead of touching the
// filesystem.
package extension

import (
	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/runtime"
)

// Extension is one loadable primitive set.
type Extension interface {
	// Name is the identifier scripts pass to (load-ext "name").
	Name() string

	// Setup installs the extension's procedures into env.
	Setup(env *runtime.Environment) error
}

// Registry holds every Extension a host process has made available to
// load-ext. It is distinct from builtins.Registry: builtins are always
// present, extensions are opt-in and named explicitly at load time.
type Registry struct {
	extensions map[string]Extension
}

// NewRegistry creates an empty extension registry.
func NewRegistry() *Registry {
	return &Registry{extensions: make(map[string]Extension)}
}

// Register makes ext available under its own Name().
func (r *Registry) Register(ext Extension) {
	r.extensions[ext.Name()] = ext
}

// Load runs the named extension's Setup against env, the mechanism
// load-ext exposes to scripts. It reports an error for an unknown name
// rather than ever touching the filesystem or a plugin loader.
func (r *Registry) Load(name string, env *runtime.Environment) error {
	ext, ok := r.extensions[name]
	if !ok {
		return langerr.Newf("no such extension: %s", name)
	}
	return ext.Setup(env)
}

// Has reports whether name is a registered extension.
func (r *Registry) Has(name string) bool {
	_, ok := r.extensions[name]
	return ok
}
