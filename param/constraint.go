package param

import (
	"context"
	"fmt"
)

// ConstraintID identifies a design rule in the constraint store.
type ConstraintID int

// A Constraint is one design rule: the identity, the limits and the default of
// a parameter. Max may be +Inf.
type Constraint struct {
	ID      ConstraintID
	Name    string
	Symbol  string
	Min     float64
	Max     float64
	Default float64
}

// A ConstraintSource looks design rules up by identifier.
//
// Implementations return errors wrapping ErrConstraintSourceUnavailable when
// there is no connection and ErrUnknownConstraintIdentity when the identifier
// is not found.
type ConstraintSource interface {
	LookupConstraint(ctx context.Context, id ConstraintID) (Constraint, error)
}

// FromConstraint creates a parameter whose identity, limits and default come
// from the design rule id. The value starts at the default.
func FromConstraint(
	ctx context.Context,
	src ConstraintSource,
	id ConstraintID,
	unit Unit,
) (*Parameter, error) {
	if src == nil {
		return nil, fmt.Errorf(
			"%w: no source to look up constraint %d",
			ErrConstraintSourceUnavailable, id)
	}

	c, err := src.LookupConstraint(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("constrained parameter %d: %w", id, err)
	}

	return MakeBuilder().
		WithName(c.Name).
		WithSymbol(c.Symbol).
		WithUnit(unit).
		WithLimits(c.Min, c.Max).
		WithDefault(c.Default).
		Build()
}
