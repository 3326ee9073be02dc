package environ

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrUndefined = errors.New("undefined identifier")
	ErrReadOnly  = errors.New("read only identifier")
)

type Environ[T any] interface {
	Resolve(string) (T, error)
	Define(string, T) error
	Names() []string
	Len() int
}

type Env[T any] struct {
	values   map[string]T
	parent   Environ[T]
	readonly bool
}

func Empty[T any]() Environ[T] {
	return Enclosed[T](nil)
}

func Enclosed[T any](parent Environ[T]) Environ[T] {
	e := Env[T]{
		values: make(map[string]T),
		parent: parent,
	}
	return &e
}

func FromMap[T any](values map[string]T) Environ[T] {
	e := Env[T]{
		values: maps.Clone(values),
	}
	if e.values == nil {
		e.values = make(map[string]T)
	}
	return &e
}

// ReadOnly returns an environment holding a copy of values. Nothing can be
// defined in it and its names can not be shadowed by an enclosed environment.
func ReadOnly[T any](values map[string]T) Environ[T] {
	e := FromMap(values).(*Env[T])
	e.readonly = true
	return e
}

func (e *Env[T]) Len() int {
	return len(e.values)
}

// Names returns the sorted names visible from e, including the ones of its
// enclosing environments.
func (e *Env[T]) Names() []string {
	list := slices.Collect(maps.Keys(e.values))
	if e.parent != nil {
		list = append(list, e.parent.Names()...)
	}
	slices.Sort(list)
	return slices.Compact(list)
}

func (e *Env[T]) Define(ident string, value T) error {
	if e.isReadOnly(ident) {
		return fmt.Errorf("%s: %w", ident, ErrReadOnly)
	}
	e.values[ident] = value
	return nil
}

// isReadOnly reports whether ident can not be defined in e: e is read only
// or one of its enclosing environments holds ident as read only.
func (e *Env[T]) isReadOnly(ident string) bool {
	if e.readonly {
		return true
	}
	p, ok := e.parent.(*Env[T])
	for ok {
		if _, found := p.values[ident]; found && p.readonly {
			return true
		}
		p, ok = p.parent.(*Env[T])
	}
	return false
}

func (e *Env[T]) Resolve(ident string) (T, error) {
	value, ok := e.values[ident]
	if ok {
		return value, nil
	}
	if e.parent != nil {
		return e.parent.Resolve(ident)
	}
	var t T
	return t, fmt.Errorf("%s: %w", ident, ErrUndefined)
}

func (e *Env[T]) Unwrap() Environ[T] {
	if e.parent == nil {
		return e
	}
	return e.parent
}
