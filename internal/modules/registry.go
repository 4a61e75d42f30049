// Package modules provides the native modules a host exposes to
// scripts through `import native`.
package modules

import (
	"github.com/oinkcat/scripting-lang/internal/evaluator"
)

// Registry resolves native module names for the evaluator.
type Registry struct {
	mods map[string]*evaluator.Module
}

func NewRegistry() *Registry {
	return &Registry{mods: make(map[string]*evaluator.Module)}
}

// Register makes a module available for `import native <name>`.
func (r *Registry) Register(mod *evaluator.Module) {
	r.mods[mod.Name] = mod
}

// Resolve implements evaluator.ModuleResolver.
func (r *Registry) Resolve(name string) (evaluator.Object, bool) {
	mod, ok := r.mods[name]
	return mod, ok
}
