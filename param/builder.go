package param

import (
	"fmt"
	"math"
)

// Builder can build parameters.
type Builder struct {
	identity Identity
	unit     Unit
	ids      *IdentityGenerator

	hasLimits bool
	min, max  float64

	hasDefault bool
	def        float64

	hasValue bool
	value    float64
}

// MakeBuilder creates a builder for an unlimited, dimensionless parameter.
func MakeBuilder() Builder {
	return Builder{}
}

// WithName sets the name.
func (b Builder) WithName(name string) Builder {
	b.identity.Name = name
	return b
}

// WithSymbol sets the symbol.
func (b Builder) WithSymbol(symbol string) Builder {
	b.identity.Symbol = symbol
	return b
}

// WithIdentityGenerator sets where the missing parts of the identity come
// from.
func (b Builder) WithIdentityGenerator(g *IdentityGenerator) Builder {
	b.ids = g
	return b
}

// WithUnit sets the unit.
func (b Builder) WithUnit(u Unit) Builder {
	b.unit = u
	return b
}

// WithLimits sets the limits, in any order.
func (b Builder) WithLimits(min, max float64) Builder {
	b.hasLimits = true
	b.min, b.max = min, max

	return b
}

// WithDefault sets the default value.
func (b Builder) WithDefault(v float64) Builder {
	b.hasDefault = true
	b.def = v

	return b
}

// WithValue sets the initial value.
func (b Builder) WithValue(v float64) Builder {
	b.hasValue = true
	b.value = v

	return b
}

// Build creates the parameter.
//
// Without limits the parameter spans the whole float64 range. Without a
// default, the default is the initial value, and the other way around. With
// neither, both are 0, or the minimum when 0 is outside the limits.
func (b Builder) Build() (*Parameter, error) {
	id, err := b.resolveIdentity()
	if err != nil {
		return nil, err
	}

	s := &state{
		identity: id,
		unit:     b.unit,
		min:      -math.MaxFloat64,
		max:      math.MaxFloat64,
	}

	if b.hasLimits {
		s.min, s.max, err = normalizeLimits(b.min, b.max)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case b.hasDefault && b.hasValue:
		s.def, s.value = b.def, b.value
	case b.hasDefault:
		s.def, s.value = b.def, b.def
	case b.hasValue:
		s.def, s.value = b.value, b.value
	case !s.inRange(0):
		s.def, s.value = s.min, s.min
	}

	if !s.inRange(s.def) {
		return nil, fmt.Errorf("%w: default %g of parameter %q is outside <%g, %g>",
			ErrOutOfRange, s.def, id.Name, s.min, s.max)
	}

	if !s.inRange(s.value) {
		return nil, fmt.Errorf("%w: value %g of parameter %q is outside <%g, %g>",
			ErrOutOfRange, s.value, id.Name, s.min, s.max)
	}

	return newParameter(s), nil
}

// MustBuild is Build that panics on error.
func (b Builder) MustBuild() *Parameter {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}

	return p
}

func (b Builder) resolveIdentity() (Identity, error) {
	id := b.identity
	if id.Name != "" && id.Symbol != "" {
		return id, nil
	}

	if b.ids == nil {
		return Identity{}, fmt.Errorf(
			"%w: name and symbol are required without an identity generator",
			ErrInvalidIdentity)
	}

	generated := b.ids.Next()
	if id.Name == "" {
		id.Name = generated.Name
	}

	if id.Symbol == "" {
		id.Symbol = generated.Symbol
	}

	return id, nil
}
