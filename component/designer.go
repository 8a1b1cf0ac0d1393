package component

import "github.com/sarchlab/partwright/param"

// A Designer constructs components of one kind.
type Designer interface {
	Name() string
	Category() string

	// ConstructComponent builds a component following spec. The first
	// recompute is scheduled before it returns.
	ConstructComponent(env Environment, spec *param.Container) (Component, error)
}

// Constructor builds a component without scheduling any recompute.
type Constructor func(
	env Environment,
	name, category string,
	spec *param.Container,
) (Component, error)

type designer struct {
	name     string
	category string
	ctor     Constructor
}

// NewDesigner creates a designer from a constructor.
func NewDesigner(name, category string, ctor Constructor) Designer {
	return &designer{name: name, category: category, ctor: ctor}
}

func (d *designer) Name() string {
	return d.name
}

func (d *designer) Category() string {
	return d.category
}

func (d *designer) ConstructComponent(
	env Environment,
	spec *param.Container,
) (Component, error) {
	c, err := d.ctor(env, d.name, d.category, spec)
	if err != nil {
		return nil, err
	}

	c.RequestUpdate()

	return c, nil
}
