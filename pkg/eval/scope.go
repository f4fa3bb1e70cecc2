package eval

import "github.com/dsonnet-io/dsonnet/pkg/value"

// Scope is an immutable-after-construction persistent frame: object
// members, array elements, and function bodies all capture their
// lexical scope, and since scopes are never mutated after
// creation, sharing one across many closures is always safe.
type Scope struct {
	parent *Scope
	vars   map[string]*value.Cell
}

// NewRootScope creates the outermost scope, normally pre-populated with
// the `ds` standard-library namespace and the transformation's named
// inputs (payload, and any side inputs).
func NewRootScope(bindings map[string]*value.Cell) *Scope {
	vars := make(map[string]*value.Cell, len(bindings))
	for k, v := range bindings {
		vars[k] = v
	}
	return &Scope{vars: vars}
}

// Child returns a new scope with a single additional binding, parented
// to s.
func (s *Scope) Child(name string, cell *value.Cell) *Scope {
	return &Scope{parent: s, vars: map[string]*value.Cell{name: cell}}
}

// ChildMany is Child for several simultaneous bindings (lambda
// parameters), avoiding N nested single-binding frames.
func (s *Scope) ChildMany(bindings map[string]*value.Cell) *Scope {
	return &Scope{parent: s, vars: bindings}
}

// Lookup searches this scope then its ancestors.
func (s *Scope) Lookup(name string) (*value.Cell, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if c, ok := cur.vars[name]; ok {
			return c, true
		}
	}
	return nil, false
}
