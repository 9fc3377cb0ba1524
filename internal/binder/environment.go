// Package binder implements the phase-ordered binding pipeline (§4.3):
// preliminary symbol allocation, header resolution, hierarchy resolution,
// member binding, constant evaluation, and annotation disambiguation,
// composed over an environment abstraction that chains classpath lookups
// beneath each phase's own source-class snapshot.
package binder

import "github.com/arcbound/jhdrc/internal/types"

// Environment is a lookup function from class symbol to its bound
// representation at the current phase (§4.3.1). Implementations never
// mutate; each phase builds a new Environment layered over the previous.
type Environment interface {
	Lookup(types.ClassSymbol) (*BoundClass, bool)
}

// mapEnvironment is the common case: a phase's freshly-produced bound
// classes, keyed by symbol.
type mapEnvironment map[types.ClassSymbol]*BoundClass

func (m mapEnvironment) Lookup(sym types.ClassSymbol) (*BoundClass, bool) {
	bc, ok := m[sym]
	return bc, ok
}

// CompoundEnvironment chains two environments: Top is searched first,
// falling back to Base. This is how a phase resolves references to
// classes bound in an earlier phase (Base) while itself only holding the
// classes it has touched so far (Top), and how classpath classes (Base)
// sit beneath every source phase (Top), per §4.3.1.
type CompoundEnvironment struct {
	Top  Environment
	Base Environment
}

func (c CompoundEnvironment) Lookup(sym types.ClassSymbol) (*BoundClass, bool) {
	if bc, ok := c.Top.Lookup(sym); ok {
		return bc, true
	}
	if c.Base != nil {
		return c.Base.Lookup(sym)
	}
	return nil, false
}

// Chain composes envs left-to-right, each layer searched before falling
// through to the next; envs[0] is searched first.
func Chain(envs ...Environment) Environment {
	if len(envs) == 0 {
		return mapEnvironment{}
	}
	env := envs[len(envs)-1]
	for i := len(envs) - 2; i >= 0; i-- {
		env = CompoundEnvironment{Top: envs[i], Base: env}
	}
	return env
}
