// ==============================================================================================
// FILE: object/environment.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The lexical scope chain from spec.md §3.4. Unlike the teacher's
//          Environment, whose single Set() always shadows into the current
//          scope, kei needs four distinct operations: define (always
//          current scope), set (nearest existing binding, else current
//          scope), get (walk the chain), and force_set_global (write at the
//          root and mark the entry overridden).
// ==============================================================================================

package object

// binding is one (name, value, is_override) entry. spec.md §3.4 describes
// the scope's storage as a singly-linked list of these; a map gives the
// same define/set/get semantics with O(1) lookup instead of a list scan.
type binding struct {
	value      Value
	isOverride bool
}

// Environment is one scope frame in the lexical chain.
type Environment struct {
	store  map[string]*binding
	outer  *Environment
	global *Environment // short-circuits to the root scope
}

// NewEnvironment creates a fresh global (root) environment.
func NewEnvironment() *Environment {
	e := &Environment{store: make(map[string]*binding)}
	e.global = e
	return e
}

// NewEnclosedEnvironment creates a new scope nested inside outer, for
// function calls, blocks, and loop bodies.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{
		store:  make(map[string]*binding),
		outer:  outer,
		global: outer.global,
	}
}

// Get walks name up the scope chain, per spec.md §3.4.
func (e *Environment) Get(name string) (Value, bool) {
	if b, ok := e.store[name]; ok {
		return b.value, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Define always inserts into the current scope, shadowing any outer
// binding of the same name — kei's `designate`.
func (e *Environment) Define(name string, val Value) Value {
	e.store[name] = &binding{value: val}
	return val
}

// Set assigns in the nearest scope that already binds name; if no scope on
// the chain binds it, it defines it in the current scope instead — kei's
// `target = expr` / `target := expr`.
func (e *Environment) Set(name string, val Value) Value {
	for scope := e; scope != nil; scope = scope.outer {
		if b, ok := scope.store[name]; ok {
			b.value = val
			return val
		}
	}
	return e.Define(name, val)
}

// ForceSetGlobal writes at the root scope and marks the entry as
// overridden — kei's `override name = expr`.
func (e *Environment) ForceSetGlobal(name string, val Value) Value {
	e.global.store[name] = &binding{value: val, isOverride: true}
	return val
}

// IsOverridden reports whether name's current binding, wherever it is
// visible from this scope, was written by ForceSetGlobal.
func (e *Environment) IsOverridden(name string) bool {
	if b, ok := e.store[name]; ok {
		return b.isOverride
	}
	if e.outer != nil {
		return e.outer.IsOverridden(name)
	}
	return false
}

// Global returns the root environment of this scope's chain.
func (e *Environment) Global() *Environment { return e.global }

// VisibleNames collects every binding name visible from this scope,
// walking outward, for unresolved-identifier "did you mean" suggestions.
func (e *Environment) VisibleNames() []string {
	var names []string
	for scope := e; scope != nil; scope = scope.outer {
		for name := range scope.store {
			names = append(names, name)
		}
	}
	return names
}
