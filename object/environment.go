package object

import (
	"errors"
	"fmt"
	"sort"

	"jocks/value"
)

var (
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	ErrUnboundVariable      = errors.New("unbound variable")
)

// A single lexical scope. Closures keep their defining scope alive by
// holding a pointer to it, so an Environment can outlive the block which
// created it. Parent links are only followed, never rewritten.
type Environment struct {
	enclosing *Environment
	values    map[string]value.Value
}

const initialEnvSize int = 4

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]value.Value, initialEnvSize),
		enclosing: enclosing,
	}
}

// Binds name in this scope only. Shadowing an enclosing binding is fine,
// binding the same name twice in one scope is not.
func (e *Environment) Create(name string, v value.Value) error {
	if _, exists := e.values[name]; exists {
		return fmt.Errorf("%w: '%v' already exists in this scope", ErrDuplicateDeclaration, name)
	}

	e.values[name] = v
	return nil
}

// Searches this scope and then its ancestors.
func (e *Environment) Get(name string) (value.Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: '%v'", ErrUnboundVariable, name)
}

// Assigns to the nearest scope owning name.
func (e *Environment) Set(name string, v value.Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = v
			return nil
		}
	}

	return fmt.Errorf("%w: '%v'", ErrUnboundVariable, name)
}

// Return the scope depth number of enclosing scopes away, nil if the chain
// is shorter than that.
func (e *Environment) Ancestor(depth int) *Environment {
	return ancestor(e, depth)
}

// Reads name from the scope exactly depth hops away, without searching
// past it.
func (e *Environment) GetAt(depth int, name string) (value.Value, error) {
	if env := ancestor(e, depth); env != nil {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: '%v' at depth %v", ErrUnboundVariable, name, depth)
}

func (e *Environment) SetAt(depth int, name string, v value.Value) error {
	if env := ancestor(e, depth); env != nil {
		if _, ok := env.values[name]; ok {
			env.values[name] = v
			return nil
		}
	}

	return fmt.Errorf("%w: '%v' at depth %v", ErrUnboundVariable, name, depth)
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Names bound directly in this scope, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func ancestor(env *Environment, distance int) *Environment {
	ret := env

	for i := 0; i < distance && ret != nil; i++ {
		ret = ret.enclosing
	}

	return ret
}
