// Package equation maps a derivation target and a parameter identity to the
// function that computes the parameter from the others.
package equation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sarchlab/partwright/param"
)

// ErrEquationNotDefined is returned when no equation is known for a
// target/identity pair.
var ErrEquationNotDefined = errors.New("equation not defined")

// TypeTag names the kind of object an equation derives parameters for.
type TypeTag string

// Func computes a quantity from the parameters in a container.
type Func func(params *param.Container) (param.Quantity, error)

// Key addresses one equation.
type Key struct {
	Target   TypeTag
	Identity param.Identity
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s(%s)", k.Target, k.Identity.Name, k.Identity.Symbol)
}

// A Registry is a fixed table of equations. It is safe for concurrent use
// because it never changes after it is built.
type Registry struct {
	equations map[Key]Func
}

// Empty returns a registry without equations.
func Empty() *Registry {
	return &Registry{equations: map[Key]Func{}}
}

// Builder can build registries.
type Builder struct {
	entries []entry
}

type entry struct {
	key Key
	fn  Func
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// With adds an equation. A later entry for the same key replaces an earlier
// one.
func (b Builder) With(target TypeTag, id param.Identity, fn Func) Builder {
	entries := make([]entry, len(b.entries), len(b.entries)+1)
	copy(entries, b.entries)
	b.entries = append(entries, entry{key: Key{Target: target, Identity: id}, fn: fn})

	return b
}

// Build creates the registry.
func (b Builder) Build() *Registry {
	r := Empty()

	for _, e := range b.entries {
		if e.fn == nil {
			panic(fmt.Sprintf("equation: nil function for %s", e.key))
		}

		r.equations[e.key] = e.fn
	}

	return r
}

// Merge combines registries into a new one. Entries of later registries
// replace entries of earlier ones with the same key. Nil registries are
// skipped.
func Merge(registries ...*Registry) *Registry {
	merged := Empty()

	for _, r := range registries {
		if r == nil {
			continue
		}

		for k, fn := range r.equations {
			merged.equations[k] = fn
		}
	}

	return merged
}

// Len returns the number of equations.
func (r *Registry) Len() int {
	return len(r.equations)
}

// Lookup returns the equation for the given target and identity.
func (r *Registry) Lookup(target TypeTag, id param.Identity) (Func, error) {
	fn, ok := r.equations[Key{Target: target, Identity: id}]
	if !ok {
		return nil, fmt.Errorf(
			"%w: don't know how to calculate parameter %s( %s ) of %s",
			ErrEquationNotDefined, id.Name, id.Symbol, target)
	}

	return fn, nil
}

// Evaluate looks up the equation and runs it on params.
func (r *Registry) Evaluate(
	target TypeTag,
	id param.Identity,
	params *param.Container,
) (param.Quantity, error) {
	fn, err := r.Lookup(target, id)
	if err != nil {
		return param.Quantity{}, err
	}

	return fn(params)
}

// Entries lists the keys of all the equations, sorted by target, name and
// symbol.
func (r *Registry) Entries() []Key {
	keys := make([]Key, 0, len(r.equations))
	for k := range r.equations {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Target != b.Target {
			return a.Target < b.Target
		}

		if a.Identity.Name != b.Identity.Name {
			return a.Identity.Name < b.Identity.Name
		}

		return a.Identity.Symbol < b.Identity.Symbol
	})

	return keys
}
