package component

import (
	"errors"
	"log/slog"

	"github.com/sarchlab/partwright/equation"
	"github.com/sarchlab/partwright/hooking"
	"github.com/sarchlab/partwright/param"
	"github.com/sarchlab/partwright/scheduling"
)

// ErrSpecificationIncomplete is returned by designers when a parameter they
// require is missing from the specification.
var ErrSpecificationIncomplete = errors.New("specification incomplete")

// A Node is an element of a design tree.
type Node interface {
	Name() string
	Category() string
}

// A Component is a node that keeps an artifact up to date with its
// specification.
type Component interface {
	Node
	hooking.Hookable

	// Specification returns the parameters the component was built from.
	Specification() *param.Container

	// Parameters returns the parameters of the component. Keys the
	// component does not define itself resolve in the specification.
	Parameters() *param.Container

	// Artifact returns the last artifact successfully constructed.
	Artifact() (Artifact, bool)

	// Revision returns the number of successful recomputes so far.
	Revision() uint64

	// RequestUpdate schedules one recompute and returns its handle. Callers
	// may ignore the handle.
	RequestUpdate() *scheduling.Handle[Artifact]

	// Release detaches the component from its specification.
	Release()
}

// Environment carries the services components are built with.
type Environment struct {
	Scheduler scheduling.Scheduler
	Logger    *slog.Logger
	Equations *equation.Registry

	// Hooks are attached to every component built in the environment.
	Hooks []hooking.Hook
}

func (e Environment) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}

	return e.Logger
}

func (e Environment) equations() *equation.Registry {
	if e.Equations == nil {
		return equation.Empty()
	}

	return e.Equations
}
