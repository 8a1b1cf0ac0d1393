package param

import "errors"

// Validation errors.
var (
	// ErrOutOfRange is returned when a value or a default falls outside the
	// limits of a parameter.
	ErrOutOfRange = errors.New("param: value out of range")

	// ErrRangeInvalid is returned when the minimum equals the maximum.
	ErrRangeInvalid = errors.New("param: minimum and maximum are the same")

	// ErrInvalidIdentity is returned for an empty name or symbol.
	ErrInvalidIdentity = errors.New("param: invalid parameter identity")

	// ErrUnitMismatch is returned when a quantity is given in a unit other
	// than the parameter's.
	ErrUnitMismatch = errors.New("param: unit mismatch")
)

// Lookup errors.
var (
	// ErrParameterNotFound is returned by a container that has no parameter
	// under the requested key.
	ErrParameterNotFound = errors.New("param: parameter not found")

	// ErrUnknownConstraintIdentity is returned when the constraint store has no
	// entry for the requested identifier.
	ErrUnknownConstraintIdentity = errors.New("param: unknown constraint identity")
)

// Infrastructure errors.
var (
	// ErrConstraintSourceUnavailable is returned when there is no usable
	// connection to the constraint store.
	ErrConstraintSourceUnavailable = errors.New("param: constraint source unavailable")
)
